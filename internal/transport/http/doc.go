// Package http implements the chi handlers of the sales dashboard API.
//
// Handlers stay thin: they parse the query string or a validated JSON body,
// call one service method and render the result inside the standard
// envelope:
//
//	{"status": "success", "data": ..., "count": n}
//
// # Error Handling
//
// Every failure goes through apierrors.ErrorHandler and is rendered as RFC
// 7807 problem details. Service sentinels are translated first, so a
// read-only dataset becomes 405 RECORDS_READ_ONLY and a missing model
// becomes 503 PREDICTOR_UNAVAILABLE. An empty filter result is a 404 whose
// detail is the notice the UI shows.
//
// # Routes
//
//	GET    /dashboard           totals and the six summary tables
//	GET    /dashboard/options   filter domain
//	GET    /dashboard/records   filtered dataset
//	GET    /dashboard/export    filtered dataset or summary as CSV
//	POST   /records             append a row
//	GET    /records/{row}       read a row
//	PUT    /records/{row}       overwrite a row
//	DELETE /records/{row}       delete a row
//	POST   /predict             predict from a feature map
//	POST   /predict/from-date   predict from a date and measurements
//	GET    /predict/model       loaded model and its features
//
// # Testing
//
// Handlers are tested with httptest against testify mocks of the service
// interfaces declared in services.go.
package http
