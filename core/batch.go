package core

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// SubmitAll submits every task in order and waits for all of them,
// returning results in submission order. The first task failure (error or
// captured panic) stops the wait and is returned; remaining tasks still run
// to completion on the pool, their outcomes discarded.
//
// ctx bounds only the waiting, not the tasks themselves: the pool does not
// support cancellation.
func SubmitAll[T any](ctx context.Context, p *Pool, tasks []TaskWithResult[T]) ([]T, error) {
	if len(tasks) == 0 {
		return []T{}, nil
	}

	futures := make([]*Future[T], len(tasks))
	for i, task := range tasks {
		future, err := Submit(p, task)
		if err != nil {
			return nil, err
		}
		futures[i] = future
	}

	g, gctx := errgroup.WithContext(ctx)
	results := make([]T, len(tasks))
	for i, future := range futures {
		g.Go(func() error {
			value, err := future.GetContext(gctx)
			if err != nil {
				return err
			}
			results[i] = value
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
