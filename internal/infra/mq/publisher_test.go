//go:build unit

package mq_test

import (
	"testing"

	"dj-booking-engine/internal/infra/mq"
	"dj-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHeaders(t *testing.T) {
	t.Run("includes recipient when set", func(t *testing.T) {
		recipient := uuid.New()
		h := mq.Headers(shared.NotificationJob{Kind: shared.NotificationKindDJ, RecipientID: &recipient, Attempts: 2})

		assert.Equal(t, "dj", h["kind"])
		assert.Equal(t, recipient.String(), h["recipient_id"])
		assert.Equal(t, int32(2), h["attempts"])
	})

	t.Run("omits recipient when nil", func(t *testing.T) {
		h := mq.Headers(shared.NotificationJob{Kind: shared.NotificationKindClient})

		_, ok := h["recipient_id"]
		assert.False(t, ok)
	})
}
