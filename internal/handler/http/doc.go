// Package http implements the REST surface of the configuration server.
//
// It exposes the configuration document (read and partial update), the
// gateway IDENTIFY validation endpoint, the server version and Prometheus
// metrics. Tracing, access logging, metrics, compression and admin
// authentication are handled here before requests reach the service layer.
package http
