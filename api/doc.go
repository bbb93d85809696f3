// Package api registers the service's HTTP routes on the Gin engine.
//
// Public routes: POST /registro and POST /login (credential flows, rate
// limited), GET / (home page) and GET /ui (demo page). Everything under
// /tareas sits behind the bearer-token gate: the HTML greeting, the JSON
// task list, and task create/update/delete.
package api
