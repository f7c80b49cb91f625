package main

import (
	"net/http"
	"time"
)

func (app *application) dashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	stats, err := app.store.Analytics.DashboardStats(r.Context(), business.ID, time.Now())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, stats)
}

func (app *application) weeklySalesHandler(w http.ResponseWriter, r *http.Request) {
	business, ok := app.resolveBusiness(w, r)
	if !ok {
		return
	}

	// trailing 7-day window ending today
	start := time.Now().AddDate(0, 0, -7)

	daily, err := app.store.Analytics.WeeklySales(r.Context(), business.ID, start)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, daily)
}
