package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus/push"
)

// PushJob is the Pushgateway job name used by ingest runs.
const PushJob = "cinedex_ingest"

// PushIngest sends the ingest collectors to the Pushgateway at url,
// replacing any metrics previously pushed for the same job.
func PushIngest(ctx context.Context, url, instance string) error {
	pusher := push.New(url, PushJob)
	for _, c := range IngestCollectors() {
		pusher = pusher.Collector(c)
	}

	if instance != "" {
		pusher = pusher.Grouping("instance", instance)
	}

	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("pushing ingest metrics: %w", err)
	}

	return nil
}
