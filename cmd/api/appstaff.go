package main

import (
	"net/http"
	"time"
)

const recentActivityLimit = 20

func (app *application) appStaffStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.store.Analytics.AppStaffStats(r.Context(), time.Now())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, stats)
}

func (app *application) appStaffMerchantsHandler(w http.ResponseWriter, r *http.Request) {
	merchants, err := app.store.Analytics.MerchantsWithBusiness(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, merchants)
}

func (app *application) appStaffActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	activities, err := app.store.Analytics.RecentActivities(r.Context(), recentActivityLimit)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, activities)
}
