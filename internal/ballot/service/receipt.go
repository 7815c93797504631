package service

import (
	"bytes"
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"quorum/internal/ballot/models"
	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/platform/sentinel"
	"quorum/pkg/requestcontext"
)

// VerifyReceipt checks a receipt against the ledger. It reads only: the
// signature is recomputed from the decrypted payload and the election chain
// is replayed up to the receipt's position, so repeated calls give the same
// answer and later votes by others do not affect it.
func (s *Service) VerifyReceipt(ctx context.Context, receiptID string) (v *models.Verification, err error) {
	ctx, span := s.tracer.Start(ctx, "ballot.VerifyReceipt")
	defer func() { endSpan(span, err) }()
	start := time.Now()

	receipt, err := s.store.FindReceipt(ctx, receiptID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.ObserveVerification(string(models.VerificationNotFound), time.Since(start))
			return &models.Verification{Status: models.VerificationNotFound}, nil
		}
		return nil, dErrors.FromStore(err, "failed to load receipt")
	}

	v, err = s.verify(ctx, receipt)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("election_id", receipt.ElectionID.String()),
		attribute.String("status", string(v.Status)),
	)
	s.metrics.ObserveVerification(string(v.Status), time.Since(start))
	if v.Status == models.VerificationTampered {
		s.logger.WarnContext(ctx, "receipt failed verification",
			"request_id", requestcontext.RequestID(ctx),
			"receipt_id", receipt.ID,
			"election_id", receipt.ElectionID,
		)
	}
	return v, nil
}

func (s *Service) verify(ctx context.Context, r *models.Receipt) (*models.Verification, error) {
	tampered := &models.Verification{Status: models.VerificationTampered, Receipt: r}

	vote, err := s.store.FindVote(ctx, r.VoteID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return tampered, nil
	}
	if err != nil {
		return nil, dErrors.FromStore(err, "failed to load vote")
	}
	if vote.ElectionID != r.ElectionID || vote.VoterID != r.VoterID || !vote.CastAt.Equal(r.CastAt) ||
		vote.ChainIndex != r.ChainIndex || !bytes.Equal(vote.ChainDigest, r.ChainDigest) {
		return tampered, nil
	}

	payload, err := s.sealer.Open(vote.ID, vote.Payload)
	if err != nil || payload != models.PayloadOf(vote) {
		return tampered, nil
	}
	if !s.sealer.VerifySignature(payload, vote.Signature) || models.ReceiptID(vote.ID, vote.Signature) != r.ID {
		return tampered, nil
	}

	chain, err := s.store.ChainPrefix(ctx, r.ElectionID, r.ChainIndex)
	if errors.Is(err, sentinel.ErrNotFound) {
		return tampered, nil
	}
	if err != nil {
		return nil, dErrors.FromStore(err, "failed to load chain")
	}
	head, err := models.Replay(r.ElectionID, chain)
	if err != nil || !bytes.Equal(head, r.ChainDigest) {
		return tampered, nil
	}

	return &models.Verification{Status: models.VerificationValid, Receipt: r, Superseded: vote.Superseded}, nil
}

// VerifyReceiptToken validates a portable receipt token, then verifies the
// receipt it names. A token whose pinned values differ from the ledger's
// receipt is reported as tampered.
func (s *Service) VerifyReceiptToken(ctx context.Context, token string) (*models.Verification, error) {
	claims, err := s.tokens.Parse(token, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	v, err := s.VerifyReceipt(ctx, claims.ReceiptID)
	if err != nil {
		return nil, err
	}
	if v.Status == models.VerificationValid && !claims.Matches(v.Receipt) {
		return &models.Verification{Status: models.VerificationTampered, Receipt: v.Receipt}, nil
	}
	return v, nil
}
