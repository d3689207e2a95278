// Package services holds the sales dashboard's business operations between
// the HTTP handlers and the record store.
//
//   - DashboardService loads a fresh table per request, applies a filter and
//     aggregates the chart tables.
//   - RecordService performs row-level CRUD against a writable store.
//   - PredictionService validates feature vectors and queries the model.
//   - HealthService reports liveness, readiness and version.
//
// Services accept narrow interfaces and return domain types. Store and
// prediction failures are passed through as *errors.AppError so the transport
// layer can map them to problem responses.
package services
