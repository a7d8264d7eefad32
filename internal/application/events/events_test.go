package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/findr-api/internal/domain"
)

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, e domain.Event) error {
	return m.Called(ctx, e).Error(0)
}

func TestEmit(t *testing.T) {
	e := domain.NewEvent(domain.EventItemVerified, "i1")
	p := &mockPublisher{}
	p.On("Publish", mock.Anything, e).Return(errors.New("broker down")).Once()

	assert.NotPanics(t, func() { Emit(context.Background(), p, e) })
	assert.NotPanics(t, func() { Emit(context.Background(), nil, e) })
	p.AssertExpectations(t)
}
