package api

import (
	"context"

	"github.com/Skotchmaster/quest_academy/internal/gateway"
	"github.com/Skotchmaster/quest_academy/internal/transport"
)

type Submissions struct {
	gw *gateway.Client
}

func (s *Submissions) Mine(ctx context.Context) ([]transport.Submission, error) {
	return getList[transport.Submission](ctx, s.gw, "/submissions/my", nil)
}

func (s *Submissions) ByAssignment(ctx context.Context, assignmentID int64) ([]transport.Submission, error) {
	return getList[transport.Submission](ctx, s.gw, "/submissions/assignment/"+id(assignmentID), nil)
}

func (s *Submissions) Create(ctx context.Context, in transport.SubmissionInput) (*transport.Submission, error) {
	return post[transport.Submission](ctx, s.gw, "/submissions/", in)
}

// Grade is teacher-only; the server awards XP and gold on approval.
func (s *Submissions) Grade(ctx context.Context, submissionID int64, in transport.Grade) (*transport.Submission, error) {
	return put[transport.Submission](ctx, s.gw, "/submissions/"+id(submissionID)+"/grade", in)
}

type Assignments struct {
	gw *gateway.Client
}

func (a *Assignments) Create(ctx context.Context, in transport.AssignmentInput) (*transport.Assignment, error) {
	return post[transport.Assignment](ctx, a.gw, "/assignments/", in)
}

func (a *Assignments) Get(ctx context.Context, assignmentID int64) (*transport.Assignment, error) {
	return getOne[transport.Assignment](ctx, a.gw, "/assignments/"+id(assignmentID), nil)
}

func (a *Assignments) ByQuest(ctx context.Context, questID int64) ([]transport.Assignment, error) {
	return getList[transport.Assignment](ctx, a.gw, "/assignments/quest/"+id(questID), nil)
}

func (a *Assignments) Teacher(ctx context.Context) ([]transport.Assignment, error) {
	return getList[transport.Assignment](ctx, a.gw, "/assignments/teacher/all", nil)
}

func (a *Assignments) Pending(ctx context.Context) ([]transport.Assignment, error) {
	return getList[transport.Assignment](ctx, a.gw, "/assignments/user/pending", nil)
}
