//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	id "quorum/pkg/domain"
	audit "quorum/pkg/platform/audit"
	"quorum/pkg/testutil/containers"
)

func TestStoreAgainstBroker(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	broker := containers.GetManager().GetKafka(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	const topic = "quorum.audit.test"
	client, err := NewClient(broker.Brokers)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, EnsureTopic(ctx, client, topic, 1, 1))
	require.NoError(t, EnsureTopic(ctx, client, topic, 1, 1), "creating an existing topic is a no-op")

	orgID := id.NewOrganizationID()
	store := New(client, topic)
	require.NoError(t, store.Append(ctx, audit.Event{
		Category:       audit.CategoryCompliance,
		Action:         audit.ActionVoteCast,
		OrganizationID: orgID,
		Subject:        "election-1",
	}))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.NoError(t, fetches.Err())
	records := fetches.Records()
	require.Len(t, records, 1)
	require.Equal(t, orgID.String(), string(records[0].Key))

	var got audit.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	require.Equal(t, audit.ActionVoteCast, got.Action)
	require.Equal(t, "election-1", got.Subject)
}
