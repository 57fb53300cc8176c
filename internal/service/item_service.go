package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventory-catalog/internal/domain"
	"inventory-catalog/internal/events"
	"inventory-catalog/internal/repository"

	"go.uber.org/zap"
)

// ItemService holds the business rules the store does not know about
type ItemService struct {
	repository repository.ItemRepository
	eventBus   events.EventPublisher
	logger     *zap.Logger
}

func NewItemService(repo repository.ItemRepository, eventBus events.EventPublisher, logger *zap.Logger) *ItemService {
	return &ItemService{
		repository: repo,
		eventBus:   eventBus,
		logger:     logger,
	}
}

func (s *ItemService) GetAll(ctx context.Context) ([]domain.Item, error) {
	items, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (s *ItemService) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return nil, domain.NewNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return item, nil
}

// Create stores a new item. The ExistsByName lookup only gives an early, clean
// answer; the store's constraint is what guarantees uniqueness under concurrency.
func (s *ItemService) Create(ctx context.Context, in domain.ItemInput) (*domain.Item, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repository.ExistsByName(ctx, in.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check item name: %w", err)
	}
	if exists {
		return nil, domain.NewDuplicateNameError(in.Name)
	}

	created, err := s.repository.Save(ctx, domain.NewItem(in))
	if err != nil {
		return nil, s.translateSaveError(err, in.Name, "create")
	}

	s.publish(ctx, events.ItemCreatedEvent{Item: *created, OccurredAt: time.Now().UTC()})
	s.logger.Info("Item created", zap.Int64("item_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

// Update replaces every mutable field of an existing item. Moving to a name held
// by a different item is rejected the same way create rejects it.
func (s *ItemService) Update(ctx context.Context, id int64, in domain.ItemInput) (*domain.Item, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.Name != in.Name {
		exists, err := s.repository.ExistsByName(ctx, in.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check item name: %w", err)
		}
		if exists {
			return nil, domain.NewDuplicateNameError(in.Name)
		}
	}

	existing.Apply(in)

	updated, err := s.repository.Save(ctx, existing)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			// deleted between the lookup and the write
			return nil, domain.NewNotFoundError(id)
		}
		return nil, s.translateSaveError(err, in.Name, "update")
	}

	s.publish(ctx, events.ItemUpdatedEvent{Item: *updated, OccurredAt: time.Now().UTC()})
	s.logger.Info("Item updated", zap.Int64("item_id", updated.ID))
	return updated, nil
}

func (s *ItemService) Delete(ctx context.Context, id int64) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repository.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return domain.NewNotFoundError(id)
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.publish(ctx, events.ItemDeletedEvent{ItemID: id, Name: existing.Name, OccurredAt: time.Now().UTC()})
	s.logger.Info("Item deleted", zap.Int64("item_id", id))
	return nil
}

// SearchByName is a case-insensitive substring match; "" matches everything
func (s *ItemService) SearchByName(ctx context.Context, query string) ([]domain.Item, error) {
	items, err := s.repository.FindByNameContaining(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return items, nil
}

func (s *ItemService) translateSaveError(err error, name, operation string) error {
	if errors.Is(err, domain.ErrDuplicateName) {
		s.logger.Info("Name uniqueness enforced by store", zap.String("name", name))
		return domain.NewDuplicateNameError(name)
	}
	return fmt.Errorf("failed to %s item: %w", operation, err)
}

// publish never fails the request; the write has already happened
func (s *ItemService) publish(ctx context.Context, event interface{}) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event",
			zap.String("event-type", events.EventType(event)),
			zap.Error(err),
		)
	}
}
