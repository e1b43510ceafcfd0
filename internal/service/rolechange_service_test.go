package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"immoflow-be/internal/dto"
	"immoflow-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newRoleChangeFixture() (*roleChangeService, *fakeUow, *fakeStore) {
	uow := newFakeUow()
	store := &fakeStore{}
	svc := &roleChangeService{
		uowFactory:       &fakeUowFactory{uow: uow},
		prerequisites:    &fakePrerequisites{},
		store:            store,
		publisher:        &fakePublisher{},
		documentPipeline: &fakePipeline{},
		logger:           noopLogger{},
	}
	return svc, uow, store
}

func TestCancelErrsOnProcessedRequests(t *testing.T) {
	userId := uuid.New()

	tests := []struct {
		name    string
		status  entity.RoleChangeStatus
		wantErr error
	}{
		{"pending cancels", entity.RoleChangeStatusPending, nil},
		{"under_review cancels", entity.RoleChangeStatusUnderReview, nil},
		{"already cancelled errs", entity.RoleChangeStatusCancelled, entity.ErrAlreadyProcessed},
		{"already approved errs", entity.RoleChangeStatusApproved, entity.ErrAlreadyProcessed},
		{"already rejected errs", entity.RoleChangeStatusRejected, entity.ErrAlreadyProcessed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, uow, _ := newRoleChangeFixture()
			request := &entity.RoleChangeRequest{
				ID:     uuid.New(),
				UserID: userId,
				ToRole: entity.UserRoleOwner,
				Status: tt.status,
			}
			uow.requests.requests = []*entity.RoleChangeRequest{request}

			res, err := svc.Cancel(context.Background(), userId, request.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
				// The stored status must not move.
				assert.Equal(t, tt.status, request.Status)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, string(entity.RoleChangeStatusCancelled), res.Status)
		})
	}
}

func TestCancelGuardsOwnershipAndExistence(t *testing.T) {
	svc, uow, _ := newRoleChangeFixture()
	owner := uuid.New()
	request := &entity.RoleChangeRequest{
		ID:     uuid.New(),
		UserID: owner,
		Status: entity.RoleChangeStatusPending,
	}
	uow.requests.requests = []*entity.RoleChangeRequest{request}

	_, err := svc.Cancel(context.Background(), uuid.New(), request.ID)
	assert.ErrorIs(t, err, entity.ErrPermissionDenied)

	_, err = svc.Cancel(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, entity.ErrRequestNotFound)
}

func submitRequest() *dto.SubmitRoleChangeRequest {
	content := base64.StdEncoding.EncodeToString([]byte("document"))
	return &dto.SubmitRoleChangeRequest{
		ToRole: "owner",
		Documents: map[string]dto.DocumentUpload{
			"identity_card":  {FileName: "id.pdf", Content: content},
			"property_title": {FileName: "title.pdf", Content: content},
		},
	}
}

func TestSubmitDeletesStoredFilesWhenUploadFails(t *testing.T) {
	svc, uow, store := newRoleChangeFixture()
	userId := uuid.New()
	uow.users.users = []*entity.User{{Id: userId, Role: entity.UserRoleTenant}}

	// Second Save call fails, leaving the first document orphaned unless
	// the saga compensates.
	store.failAfter = 1

	res, err := svc.Submit(context.Background(), userId, submitRequest())
	assert.Error(t, err)
	var uploadErr *entity.DocumentUploadError
	assert.True(t, errors.As(err, &uploadErr))
	assert.Nil(t, res)

	assert.Empty(t, uow.requests.requests, "no request row may exist after a failed upload")
	assert.Equal(t, store.saved, store.deleted, "every stored file must be deleted again")
}

func TestSubmitDeletesStoredFilesWhenInsertFails(t *testing.T) {
	svc, uow, store := newRoleChangeFixture()
	userId := uuid.New()
	uow.users.users = []*entity.User{{Id: userId, Role: entity.UserRoleTenant}}
	uow.requests.createErr = entity.ErrDuplicateRequest

	_, err := svc.Submit(context.Background(), userId, submitRequest())
	assert.ErrorIs(t, err, entity.ErrDuplicateRequest)

	assert.Len(t, store.saved, 2)
	assert.ElementsMatch(t, store.saved, store.deleted)
}

func TestSubmitRejectsOpenDuplicate(t *testing.T) {
	svc, uow, store := newRoleChangeFixture()
	userId := uuid.New()
	uow.users.users = []*entity.User{{Id: userId, Role: entity.UserRoleTenant}}
	uow.requests.hasOpen = true

	_, err := svc.Submit(context.Background(), userId, submitRequest())
	assert.ErrorIs(t, err, entity.ErrDuplicateRequest)
	assert.Empty(t, store.saved, "nothing may be stored before the duplicate pre-check")
}
