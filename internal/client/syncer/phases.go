package syncer

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophrecords/internal/common"
	"github.com/dmitrijs2005/gophrecords/internal/records"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// push uploads the dirty set of col and clears the flag of every record the
// remote acknowledged. Every upload is awaited before anything is marked,
// and marking uses a context detached from ctx so that acknowledged uploads
// are recorded even when the caller has given up.
func (s *Syncer) push(ctx context.Context, scope records.Scope, col LocalCollection, pr *PhaseReport) error {
	collection := col.Collection()
	dirty, err := col.ListDirty(ctx, scope)
	if err != nil {
		return &LocalError{Op: "list dirty " + string(collection), Err: err}
	}
	pr.Dirty = len(dirty)
	if len(dirty) == 0 {
		return nil
	}

	outcomes := make([]error, len(dirty))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, rec := range dirty {
		g.Go(func() error {
			outcomes[i] = s.upload(ctx, scope, collection, rec)
			return nil
		})
	}
	_ = g.Wait()

	var (
		acked  []records.Version
		failed error
	)
	for i, rec := range dirty {
		m := rec.Metadata()
		if outcomes[i] == nil {
			acked = append(acked, m.Version())
			continue
		}
		pr.Failed++
		failed = multierr.Append(failed, &RecordError{Collection: collection, ID: m.ID, Err: outcomes[i]})
		s.logger.Warn(ctx, "upload failed", "scope", scope, "collection", collection, "id", m.ID, "error", outcomes[i])
	}
	pr.Uploaded = len(acked)

	if len(acked) > 0 {
		if err := col.MarkClean(context.WithoutCancel(ctx), acked); err != nil {
			return multierr.Append(&LocalError{Op: "mark clean " + string(collection), Err: err}, failed)
		}
		pr.Cleaned = len(acked)
	}

	if failed != nil {
		return &BatchError{Collection: collection, Total: len(dirty), Err: failed}
	}
	return nil
}

func (s *Syncer) upload(ctx context.Context, scope records.Scope, collection records.Collection, rec records.Record) error {
	doc, err := records.Encode(rec)
	if err != nil {
		return err
	}
	return s.remote.UpsertOne(ctx, scope, collection, doc)
}

// pull fetches remote documents newer than the local watermark and applies
// them in one local transaction. full ignores the watermark.
func (s *Syncer) pull(ctx context.Context, scope records.Scope, col LocalCollection, full bool, pr *PhaseReport) error {
	collection := col.Collection()

	var watermark int64
	if !full {
		wm, err := col.MaxUpdatedAt(ctx, scope)
		if err != nil {
			return &LocalError{Op: "watermark " + string(collection), Err: err}
		}
		watermark = wm
	}
	pr.Watermark = watermark

	docs, err := s.remote.QueryNewerThan(ctx, scope, collection, watermark)
	if err != nil {
		return fmt.Errorf("query %s: %w", collection, err)
	}
	pr.Pulled = len(docs)
	if len(docs) == 0 {
		return nil
	}

	recs := make([]records.Record, 0, len(docs))
	for _, doc := range docs {
		rec, err := records.Decode(collection, doc)
		if err != nil {
			return &RecordError{Collection: collection, ID: doc.ID, Err: err}
		}
		m := rec.Metadata()
		if m.Scope == "" {
			m.Scope = scope
		}
		if m.Scope != scope {
			return &RecordError{Collection: collection, ID: doc.ID,
				Err: fmt.Errorf("%w: scope %q in %q partition", common.ErrInvalidDocument, m.Scope, scope)}
		}
		recs = append(recs, rec)
	}

	if err := col.Upsert(ctx, recs...); err != nil {
		return &LocalError{Op: "upsert " + string(collection), Err: err}
	}
	pr.Applied = len(recs)
	return nil
}
