package ingest

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"
)

// scanPopularity collects the ids whose vote count meets the threshold.
// Rows with an unparseable vote count are malformed and never retained.
func (p *Pipeline) scanPopularity(ctx context.Context, st *runState, rep *Report) error {
	err := p.dumps.Scan(ctx, RatingsDump, func(cols []string) error {
		rep.RatingsRead++

		if len(cols) < ratingCols {
			rep.malformed(RatingsDump)
			return nil
		}

		votes, err := strconv.Atoi(cols[ratingVotes])
		if err != nil {
			rep.malformed(RatingsDump)
			return nil
		}

		if votes >= p.opts.MinVotes {
			st.popular[cols[ratingID]] = struct{}{}
		}

		return nil
	})
	if err != nil {
		return err
	}

	rep.Popular = len(st.popular)
	p.log.WithFields(logrus.Fields{
		"read":      rep.RatingsRead,
		"popular":   rep.Popular,
		"min_votes": p.opts.MinVotes,
	}).Info("ratings scanned")

	return nil
}
