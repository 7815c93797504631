package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	id "quorum/pkg/domain"
	audit "quorum/pkg/platform/audit"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	var results kgo.ProduceResults
	for _, r := range rs {
		f.records = append(f.records, r)
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func TestAppend(t *testing.T) {
	producer := &fakeProducer{}
	store := New(producer, "quorum.audit")
	orgID := id.NewOrganizationID()

	err := store.Append(context.Background(), audit.Event{
		Action:         audit.ActionVoteCast,
		Category:       audit.CategoryCompliance,
		OrganizationID: orgID,
		Subject:        "election-1",
	})
	require.NoError(t, err)
	require.Len(t, producer.records, 1)

	rec := producer.records[0]
	assert.Equal(t, "quorum.audit", rec.Topic)
	assert.Equal(t, orgID.String(), string(rec.Key))

	var decoded audit.Event
	require.NoError(t, json.Unmarshal(rec.Value, &decoded))
	assert.Equal(t, audit.ActionVoteCast, decoded.Action)
}

func TestAppendSurfacesProduceError(t *testing.T) {
	store := New(&fakeProducer{err: errors.New("broker down")}, "quorum.audit")
	err := store.Append(context.Background(), audit.Event{Action: audit.ActionOTPIssued})
	assert.ErrorContains(t, err, "broker down")
}
