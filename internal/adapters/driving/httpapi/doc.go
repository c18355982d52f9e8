// Package httpapi exposes the upload, file and statistics services over HTTP
// using gin.
//
// Routes:
//
//	POST   /upload/          multipart upload, field "file"
//	GET    /files/           all files
//	GET    /files/:id/       the matching file as a one-element list
//	DELETE /files/:id/       remove a file
//	GET    /stats/           word statistics across all files
//	GET    /stats/:id/       word statistics scoped to one file
//	GET    /download/:id/    file content as an attachment
//	GET    /show/:id/        file content inline
//	GET    /media/*          raw blob area
//	GET    /healthz          liveness probe
package httpapi
