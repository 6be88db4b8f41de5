package service

import (
	"context"
	"encoding/json"
	"time"

	"virtual-lab-be/internal/dto"
	"virtual-lab-be/internal/entity"
	"virtual-lab-be/internal/repository/specification"
	"virtual-lab-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// ILabNoteService manages the one-note-per-lab student notebook.
type ILabNoteService interface {
	Save(ctx context.Context, userId uuid.UUID, labId string, req *dto.SaveLabNoteRequest) (*dto.LabNoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, labId string) (*dto.LabNoteResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.LabNoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, labId string) error
}

type labNoteService struct {
	uowFactory        unitofwork.RepositoryFactory
	activityPublisher IPublisherService
}

func NewLabNoteService(uowFactory unitofwork.RepositoryFactory, activityPublisher IPublisherService) ILabNoteService {
	return &labNoteService{
		uowFactory:        uowFactory,
		activityPublisher: activityPublisher,
	}
}

// Save upserts: the first save creates the note, later saves replace
// its content in place.
func (s *labNoteService) Save(ctx context.Context, userId uuid.UUID, labId string, req *dto.SaveLabNoteRequest) (*dto.LabNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.LabNoteRepository()

	note, err := repo.FindOne(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByLabID{LabID: labId},
	)
	if err != nil {
		return nil, err
	}

	if note == nil {
		note = &entity.LabNote{
			Id:        uuid.New(),
			UserId:    userId,
			LabId:     labId,
			Content:   req.Content,
			CreatedAt: time.Now(),
		}
		if err := repo.Create(ctx, note); err != nil {
			return nil, err
		}
	} else {
		note.Content = req.Content
		if err := repo.Update(ctx, note); err != nil {
			return nil, err
		}
	}

	s.publishActivity(ctx, userId, labId)

	return toLabNoteResponse(note), nil
}

func (s *labNoteService) publishActivity(ctx context.Context, userId uuid.UUID, labId string) {
	if s.activityPublisher == nil {
		return
	}
	msg := dto.ActivityMessage{
		UserId:     userId,
		LabId:      labId,
		Kind:       string(entity.ActivityNoteSaved),
		Detail:     "Saved lab notes",
		OccurredAt: time.Now(),
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return
	}
	// Timeline bookkeeping must never fail the save.
	_ = s.activityPublisher.Publish(ctx, raw)
}

func (s *labNoteService) Show(ctx context.Context, userId uuid.UUID, labId string) (*dto.LabNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.LabNoteRepository().FindOne(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByLabID{LabID: labId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}
	return toLabNoteResponse(note), nil
}

func (s *labNoteService) List(ctx context.Context, userId uuid.UUID) ([]*dto.LabNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.LabNoteRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.LabNoteResponse, len(notes))
	for i, n := range notes {
		res[i] = toLabNoteResponse(n)
	}
	return res, nil
}

func (s *labNoteService) Delete(ctx context.Context, userId uuid.UUID, labId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.LabNoteRepository()

	note, err := repo.FindOne(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByLabID{LabID: labId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return nil
	}
	return repo.Delete(ctx, note.Id)
}

func toLabNoteResponse(n *entity.LabNote) *dto.LabNoteResponse {
	return &dto.LabNoteResponse{
		Id:        n.Id,
		LabId:     n.LabId,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
