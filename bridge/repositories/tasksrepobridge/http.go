package tasksrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/luminahq/lumina/bridge/scaffolding/errs"
	"github.com/luminahq/lumina/bridge/scaffolding/fopbridge"
	"github.com/luminahq/lumina/bridge/scaffolding/mid"
	"github.com/luminahq/lumina/core/repositories/tasksrepo"
	"github.com/luminahq/lumina/core/scaffolding/fop"
	"github.com/luminahq/lumina/infrastructure/web"
)

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	orderBy, err := fop.ParseOrder(tasksrepo.OrderByFields, web.QueryParam(r, "orderBy"), tasksrepo.DefaultOrderBy)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tasks, err := b.taskRepository.List(ctx, userID, orderBy)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordsResponse(tasks)
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	task, err := b.taskRepository.Get(ctx, web.Param(r, "task_id"), userID)
	if err != nil {
		return taskError(err)
	}

	return fopbridge.NewRecordResponse(task)
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	var input CreateTaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	task, err := b.taskRepository.Create(ctx, userID, tasksrepo.CreateTask{
		Title:    input.Title,
		Priority: input.Priority,
	})
	if err != nil {
		return taskError(err)
	}

	return web.NewJSONResponseWithStatus(fopbridge.NewRecordResponse(task), http.StatusCreated)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	var input UpdateTaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	task, err := b.taskRepository.Update(ctx, web.Param(r, "task_id"), userID, tasksrepo.UpdateTask{
		Title:    input.Title,
		Status:   input.Status,
		Priority: input.Priority,
	})
	if err != nil {
		return taskError(err)
	}

	return fopbridge.NewRecordResponse(task)
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	if err := b.taskRepository.Delete(ctx, web.Param(r, "task_id"), userID); err != nil {
		return taskError(err)
	}

	return fopbridge.NewCodeResponse("ok", "task deleted")
}

func (b *bridge) httpStats(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	stats, err := b.taskRepository.Stats(ctx, userID)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return StatsResponse{
		Total:                stats.Total,
		Completed:            stats.Completed,
		CompletionPercentage: stats.CompletionPercentage(),
	}
}

// taskError maps repository errors to coded app errors.
func taskError(err error) *errs.Error {
	switch {
	case errors.Is(err, tasksrepo.ErrTaskNotFound):
		return errs.New(errs.NotFound, err)
	case errors.Is(err, tasksrepo.ErrEmptyTitle):
		return errs.New(errs.InvalidArgument, err)
	default:
		return errs.New(errs.Internal, err)
	}
}
