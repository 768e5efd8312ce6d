package accessservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingService/pkg/logger"
)

func TestGetActor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/users/7/access":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"user_id": 7, "roles": ["Department Leader"], "led_departments": [3, 4]}`))
		case "/internal/users/8/access":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, logger.Nop{})

	t.Run("roles and led departments", func(t *testing.T) {
		actor, err := client.GetActor(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), actor.UserID)
		assert.True(t, actor.LeadsDepartment(4))
		assert.False(t, actor.IsSystemManager())
	})

	t.Run("unknown user", func(t *testing.T) {
		actor, err := client.GetActor(context.Background(), 8)
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Nil(t, actor)
	})

	t.Run("degraded", func(t *testing.T) {
		actor, err := client.GetActor(context.Background(), 9)
		assert.ErrorIs(t, err, ErrServiceDegraded)
		require.NotNil(t, actor)
		assert.Empty(t, actor.Roles)
		assert.Equal(t, int64(9), actor.UserID)
	})
}
