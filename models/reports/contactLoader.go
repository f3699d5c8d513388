package reports

import (
	"context"

	"github.com/dimitrizarkua/jobs_backend/models"
	"github.com/graph-gophers/dataloader/v7"
)

// NewContactNameLoader batches contact name lookups so per-contact report
// rows issue one query for the whole contact set.
func NewContactNameLoader() *dataloader.Loader[int, string] {
	batchFn := func(ctx context.Context, contactIds []int) []*dataloader.Result[string] {
		results := make([]*dataloader.Result[string], len(contactIds))

		contacts, err := models.GetContactsByIds(ctx, contactIds)
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result[string]{Error: err}
			}
			return results
		}

		for i, id := range contactIds {
			if contact, ok := contacts[id]; ok {
				results[i] = &dataloader.Result[string]{Data: contact.Name()}
			} else {
				results[i] = &dataloader.Result[string]{Data: ""}
			}
		}
		return results
	}

	return dataloader.NewBatchedLoader(batchFn, dataloader.WithClearCacheOnBatch[int, string]())
}
