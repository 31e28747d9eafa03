// Package reconcile merges decoded Mastodon API entities into the local object graph.
//
// Every remote identity maps to exactly one local node. Repeated or out-of-order
// delivery is absorbed by a monotonic "observed at" gate: a node is only mutated when
// the batch was observed strictly after the node's UpdatedAt.
//
// # Architecture
//
// The engine consists of four layers:
//
// 1. Engine: opens one transaction per batch, resolves the viewer and hands a Batch
// to the caller. A failing batch rolls back entirely.
//
// 2. Batch Cache: maps (kind, domain, remote id) to the node already materialized in
// this batch, so a tree that references the same account twice performs one insert.
//
// 3. Upsert: the generic find-or-create, merge-if-newer primitive. Creation goes
// through store.InsertIfAbsent, so concurrent batches never duplicate a node.
//
// 4. Reconcilers: one per entity kind (user, relationship, status, poll, tag, setting,
// subscription). Statuses recurse into their reblog, author, poll and tags.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(db, cfg.Sync, logger)
//
//	stats, err := engine.Run(ctx, reconcile.BatchOptions{
//	    Domain:     "mastodon.social",
//	    ObservedAt: receivedAt,
//	    ViewerID:   "109",
//	}, func(ctx context.Context, b *reconcile.Batch) error {
//	    for _, s := range statuses {
//	        if _, err := reconcile.ReconcileStatus(ctx, b, s); err != nil {
//	            return err
//	        }
//	    }
//	    return nil
//	})
package reconcile
