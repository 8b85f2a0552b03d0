package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHistoryClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "default on zero", limit: 0, want: DefaultChatHistoryLimit},
		{name: "default on negative", limit: -5, want: DefaultChatHistoryLimit},
		{name: "default on oversized", limit: 5000, want: DefaultChatHistoryLimit},
		{name: "explicit limit kept", limit: 25, want: 25},
		{name: "upper bound kept", limit: 200, want: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &chatStoreStub{}
			svc := NewChatService(store, nil, zerolog.Nop())

			_, err := svc.GetHistory(context.Background(), 1, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, store.lastLimit)
		})
	}
}
