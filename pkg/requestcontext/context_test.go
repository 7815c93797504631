package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	id "quorum/pkg/domain"
)

func TestPrincipalRoundTrip(t *testing.T) {
	_, ok := PrincipalFrom(context.Background())
	assert.False(t, ok)

	p := Principal{UserID: id.NewUserID(), OrganizationID: id.NewOrganizationID(), Role: "admin"}
	got, ok := PrincipalFrom(WithPrincipal(context.Background(), p))
	assert.True(t, ok)
	assert.Equal(t, p, got)
}

func TestNowPrefersPinnedTime(t *testing.T) {
	pinned := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, pinned, Now(WithTime(context.Background(), pinned)))
	assert.WithinDuration(t, time.Now(), Now(context.Background()), time.Second)
}

func TestClientMetadataDefaultsToEmpty(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ClientIP(ctx))
	assert.Empty(t, UserAgent(ctx))
	assert.Empty(t, RequestID(ctx))

	ctx = WithRequestID(WithClientMetadata(ctx, "203.0.113.7", "curl/8"), "req-1")
	assert.Equal(t, "203.0.113.7", ClientIP(ctx))
	assert.Equal(t, "curl/8", UserAgent(ctx))
	assert.Equal(t, "req-1", RequestID(ctx))
}
