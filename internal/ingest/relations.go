package ingest

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

var castCategories = map[string]bool{"actor": true, "actress": true}

// scanCrew records the first listed director of each materialized movie.
func (p *Pipeline) scanCrew(ctx context.Context, st *runState, rep *Report) error {
	err := p.dumps.Scan(ctx, CrewDump, func(cols []string) error {
		if len(cols) < crewCols {
			rep.malformed(CrewDump)
			return nil
		}

		t, ok := st.titles[cols[crewID]]
		if !ok {
			return nil
		}

		directors := cols[crewDirectors]
		if directors == "" || directors == nullField {
			return nil
		}

		first, _, _ := strings.Cut(directors, ",")
		if first == "" {
			return nil
		}

		t.directorID = first
		st.need(first)
		rep.Directed++

		return nil
	})
	if err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"directed": rep.Directed,
		"needed":   len(st.needed),
	}).Info("crew scanned")

	return nil
}

// scanPrincipals collects actor and actress credits of materialized movies.
func (p *Pipeline) scanPrincipals(ctx context.Context, st *runState, rep *Report) error {
	err := p.dumps.Scan(ctx, PrincipalsDump, func(cols []string) error {
		if len(cols) < principalCols {
			rep.malformed(PrincipalsDump)
			return nil
		}

		movieID := cols[principalTitle]
		if _, ok := st.titles[movieID]; !ok {
			return nil
		}

		if !castCategories[cols[principalCategory]] {
			return nil
		}

		starID := cols[principalName]
		if starID == "" || starID == nullField {
			rep.malformed(PrincipalsDump)
			return nil
		}

		if st.addCredit(credit{movieID: movieID, starID: starID}) {
			rep.CastExtracted++
		}

		return nil
	})
	if err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"cast":   rep.CastExtracted,
		"needed": len(st.needed),
	}).Info("principals scanned")

	return nil
}
