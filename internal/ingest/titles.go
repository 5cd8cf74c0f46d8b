package ingest

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"
)

const movieType = "movie"

// scanTitles materializes every popular id whose row is a movie with a
// valid start year. Popular ids that are rejected leave the popular set.
func (p *Pipeline) scanTitles(ctx context.Context, st *runState, rep *Report) error {
	err := p.dumps.Scan(ctx, TitlesDump, func(cols []string) error {
		rep.TitlesRead++

		if len(cols) < titleCols {
			rep.malformed(TitlesDump)
			return nil
		}

		id := cols[titleID]
		if _, ok := st.popular[id]; !ok {
			return nil
		}

		t, ok := p.acceptTitle(cols, rep)
		if !ok {
			delete(st.popular, id)
			rep.TitlesRejected++

			return nil
		}

		st.titles[id] = t

		return nil
	})
	if err != nil {
		return err
	}

	rep.Movies = len(st.titles)
	p.log.WithFields(logrus.Fields{
		"read":     rep.TitlesRead,
		"movies":   rep.Movies,
		"rejected": rep.TitlesRejected,
	}).Info("titles scanned")

	return nil
}

func (p *Pipeline) acceptTitle(cols []string, rep *Report) (*title, bool) {
	if cols[titleType] != movieType {
		return nil, false
	}

	if cols[titleStart] == nullField {
		return nil, false
	}

	year, err := strconv.Atoi(cols[titleStart])
	if err != nil {
		rep.malformed(TitlesDump)
		return nil, false
	}

	t, err := newTitle(cols[titleID], cols[titlePrimary], year, cols[titleGenres])
	if err != nil {
		p.log.WithError(err).WithField("id", cols[titleID]).Debug("title rejected")
		return nil, false
	}

	return t, true
}
