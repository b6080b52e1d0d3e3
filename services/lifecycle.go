package services

import (
	"context"
	"fmt"

	"prepboard/models"
	"prepboard/repository"
)

// Lifecycle applies status transitions and assignment changes to single task
// instances. Every call writes through to the store, even when the value
// already matches. Instances are resolved within the caller's kitchen.
type Lifecycle struct {
	instances repository.InstanceRepository
}

func NewLifecycle(instances repository.InstanceRepository) *Lifecycle {
	return &Lifecycle{instances: instances}
}

// SetStatus moves the instance to the given status. Setting inactive also
// clears the assignee set; no other transition touches assignment.
func (s *Lifecycle) SetStatus(ctx context.Context, kitchenID, instanceID string, status models.TaskStatus) (models.TaskInstance, error) {
	return s.instances.UpdateStatus(ctx, kitchenID, instanceID, status)
}

func (s *Lifecycle) SetActive(ctx context.Context, kitchenID, instanceID string) (models.TaskInstance, error) {
	return s.SetStatus(ctx, kitchenID, instanceID, models.StatusActive)
}

func (s *Lifecycle) SetInProgress(ctx context.Context, kitchenID, instanceID string) (models.TaskInstance, error) {
	return s.SetStatus(ctx, kitchenID, instanceID, models.StatusInProgress)
}

func (s *Lifecycle) SetDone(ctx context.Context, kitchenID, instanceID string) (models.TaskInstance, error) {
	return s.SetStatus(ctx, kitchenID, instanceID, models.StatusDone)
}

func (s *Lifecycle) SetOutOfStock(ctx context.Context, kitchenID, instanceID string) (models.TaskInstance, error) {
	return s.SetStatus(ctx, kitchenID, instanceID, models.StatusOutOfStock)
}

func (s *Lifecycle) SetSkip(ctx context.Context, kitchenID, instanceID string) (models.TaskInstance, error) {
	return s.SetStatus(ctx, kitchenID, instanceID, models.StatusSkip)
}

func (s *Lifecycle) SetInactive(ctx context.Context, kitchenID, instanceID string) (models.TaskInstance, error) {
	return s.SetStatus(ctx, kitchenID, instanceID, models.StatusInactive)
}

// ToggleAssignment flips profileID's membership in the instance's assignee
// set, then derives status purely from the resulting cardinality: non-empty
// means active, empty means inactive. The derived status overwrites whatever
// the instance held before, including done.
func (s *Lifecycle) ToggleAssignment(ctx context.Context, kitchenID, instanceID, profileID string) (models.TaskInstance, error) {
	instance, err := s.instances.FindByID(ctx, kitchenID, instanceID)
	if err != nil {
		return models.TaskInstance{}, fmt.Errorf("loading instance: %w", err)
	}

	assignees := instance.Assignees()
	next := make([]string, 0, len(assignees)+1)
	removed := false
	for _, id := range assignees {
		if id == profileID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, profileID)
	}

	status := models.StatusActive
	if len(next) == 0 {
		status = models.StatusInactive
	}

	return s.instances.UpdateAssignees(ctx, kitchenID, instanceID, next, status)
}
