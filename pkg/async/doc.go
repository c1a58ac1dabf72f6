// Package async runs functions in the background and exposes their results as futures.
//
//	f := async.Go(ctx, func(ctx context.Context) (Snapshot, error) {
//		return manager.Bootstrap(ctx), nil
//	})
//	snap, err := f.Await()
package async
