package notesrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/luminahq/lumina/bridge/scaffolding/errs"
	"github.com/luminahq/lumina/bridge/scaffolding/fopbridge"
	"github.com/luminahq/lumina/bridge/scaffolding/mid"
	"github.com/luminahq/lumina/core/repositories/notesrepo"
	"github.com/luminahq/lumina/infrastructure/web"
)

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	notes, err := b.noteRepository.List(ctx, userID, web.QueryParam(r, "search"))
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordsResponse(notes)
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	note, err := b.noteRepository.Get(ctx, web.Param(r, "note_id"), userID)
	if err != nil {
		return noteError(err)
	}

	return fopbridge.NewRecordResponse(note)
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	var input CreateNoteInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	note, err := b.noteRepository.Create(ctx, userID, notesrepo.CreateNote{
		Title:   input.Title,
		Content: input.Content,
		Color:   input.Color,
	})
	if err != nil {
		return noteError(err)
	}

	return web.NewJSONResponseWithStatus(fopbridge.NewRecordResponse(note), http.StatusCreated)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	var input UpdateNoteInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	note, err := b.noteRepository.Update(ctx, web.Param(r, "note_id"), userID, notesrepo.UpdateNote{
		Title:   input.Title,
		Content: input.Content,
		Color:   input.Color,
	})
	if err != nil {
		return noteError(err)
	}

	return fopbridge.NewRecordResponse(note)
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	if err := b.noteRepository.Delete(ctx, web.Param(r, "note_id"), userID); err != nil {
		return noteError(err)
	}

	return fopbridge.NewCodeResponse("ok", "note deleted")
}

// noteError maps repository errors to coded app errors.
func noteError(err error) *errs.Error {
	switch {
	case errors.Is(err, notesrepo.ErrNoteNotFound):
		return errs.New(errs.NotFound, err)
	case errors.Is(err, notesrepo.ErrEmptyTitle):
		return errs.New(errs.InvalidArgument, err)
	default:
		return errs.New(errs.Internal, err)
	}
}
