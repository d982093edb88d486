package handlers

import (
	"strconv"

	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

func listPlanRunsHandler(c rweb.Context) error {
	limit := 0
	if q := c.Request().QueryParam("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			return c.WriteError(serr.New("limit must be a number"), 400)
		}
		limit = n
	}

	runs, err := deps.PlanRuns.ListRuns(limit)
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to list plan runs"), 500)
	}
	return c.WriteJSON(runs)
}

func getPlanRunHandler(c rweb.Context) error {
	id := c.Request().Param("id")

	run, err := deps.PlanRuns.GetRun(id)
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to get plan run"), 500)
	}
	if run == nil {
		return c.WriteError(serr.New("plan run not found"), 404)
	}
	return c.WriteJSON(run)
}
