package ingest

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/cinedex/internal/models"
)

// scanNames resolves the needed people. Rows for anyone else are dropped
// before any record is built.
func (p *Pipeline) scanNames(ctx context.Context, st *runState, rep *Report) error {
	err := p.dumps.Scan(ctx, NamesDump, func(cols []string) error {
		if len(cols) < nameCols {
			rep.malformed(NamesDump)
			return nil
		}

		id := cols[nameID]
		if _, ok := st.needed[id]; !ok {
			return nil
		}

		star, err := models.NewStar(id, cols[nameName], parseBirthYear(cols[nameBirth]))
		if err != nil {
			rep.malformed(NamesDump)
			return nil
		}

		st.names[id] = star

		return nil
	})
	if err != nil {
		return err
	}

	rep.NamesNeeded = len(st.needed)
	rep.NamesResolved = len(st.names)
	p.log.WithFields(logrus.Fields{
		"needed":   rep.NamesNeeded,
		"resolved": rep.NamesResolved,
	}).Info("names scanned")

	return nil
}

// parseBirthYear returns nil for the null marker or any unparseable value.
func parseBirthYear(field string) *int {
	if field == "" || field == nullField {
		return nil
	}

	y, err := strconv.Atoi(field)
	if err != nil || y <= 0 {
		return nil
	}

	return &y
}
