package orders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"designflow-backend/internal/catalog"
	"designflow-backend/internal/intake"
	"designflow-backend/internal/models"
	"designflow-backend/internal/store"
	"designflow-backend/internal/supabase"
)

const DefaultEstimatedCompletion = "3-5 Days"

// Builder assembles the order aggregate at submission time: it uploads
// the staged binaries, derives the dynamic brief fields and denormalizes
// the catalog entry into the order document.
type Builder struct {
	blobs         store.BlobStore
	log           *logrus.Logger
	uploadTimeout time.Duration
}

func NewBuilder(blobs store.BlobStore, log *logrus.Logger, uploadTimeout time.Duration) *Builder {
	return &Builder{
		blobs:         blobs,
		log:           log,
		uploadTimeout: uploadTimeout,
	}
}

// Build produces the order for a submission. Failed asset uploads do not
// fail the submission: the asset is dropped and its name reported back so
// the client can retry. Passing a non-empty editID reuses that order id.
func (b *Builder) Build(ctx context.Context, clientID string, req *models.SubmitOrderRequest) (*models.Order, []string, error) {
	svc, ok := catalog.ServiceByID(req.ServiceID)
	if !ok {
		return nil, nil, fmt.Errorf("unknown service %q", req.ServiceID)
	}

	orderID := req.EditID
	if orderID == "" {
		orderID = NewOrderID()
	}

	dims := req.Dimensions
	intake.Recompute(&dims)

	files, failedFiles := b.uploadStaged(ctx, req.Files, func(a models.StagedAsset) string {
		return supabase.ClientUploadPath(clientID, orderID, a.Name)
	})
	clips, failedClips := b.uploadStaged(ctx, req.VoiceClips, func(a models.StagedAsset) string {
		return supabase.VoiceNotePath(clientID, orderID, a.Name)
	})

	order := &models.Order{
		ID:       orderID,
		ClientID: clientID,

		ClientName: req.Name,
		Email:      req.Email,
		Mobile:     req.Mobile,

		ServiceID:   svc.ID,
		ServiceType: svc.Title,
		Price:       svc.Price,

		Industry:       req.Industry,
		TargetAudience: req.Audience,
		Requirements:   req.Requirements,
		Keywords:       req.Keywords,
		ColorPalette:   req.ColorPalette,

		Dimensions: dims,

		Files:      files,
		VoiceClips: clips,

		CustomFields: intake.CustomFields(req),

		Status:              models.StatusPending,
		EstimatedCompletion: DefaultEstimatedCompletion,
		CreatedAt:           time.Now().UTC(),
	}

	return order, append(failedFiles, failedClips...), nil
}

// uploadStaged pushes staged assets to blob storage concurrently. Each
// upload gets its own timeout so one stalled transfer cannot hold the
// whole submission.
func (b *Builder) uploadStaged(ctx context.Context, staged []models.StagedAsset, pathFor func(models.StagedAsset) string) ([]models.Asset, []string) {
	assets := make([]models.Asset, 0, len(staged))
	var failed []string
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, a := range staged {
		wg.Add(1)
		go func(a models.StagedAsset) {
			defer wg.Done()

			uctx, cancel := context.WithTimeout(ctx, b.uploadTimeout)
			defer cancel()

			url, err := b.blobs.Upload(uctx, a.Data, pathFor(a), a.Type)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				b.log.WithFields(logrus.Fields{
					"asset": a.Name,
					"error": err,
				}).Warn("Asset upload failed, dropping from order")
				failed = append(failed, a.Name)
				return
			}
			assets = append(assets, models.Asset{Name: a.Name, Type: a.Type, Data: url})
		}(a)
	}
	wg.Wait()

	return assets, failed
}
