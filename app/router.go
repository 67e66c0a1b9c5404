package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthCheckHandler)

	// author service
	router.HandlerFunc(http.MethodPost, "/authors", app.registerAuthorHandler)
	router.HandlerFunc(http.MethodPost, "/login", app.loginAuthorHandler)

	// blog service
	router.HandlerFunc(http.MethodPost, "/blogs", app.requireAuthAuthor(app.createBlogHandler))
	router.HandlerFunc(http.MethodGet, "/blogList", app.requireAuthAuthor(app.listBlogsHandler))
	router.HandlerFunc(http.MethodPut, "/updateblog/:blogId", app.requireBlogOwner(app.updateBlogHandler))
	router.HandlerFunc(http.MethodDelete, "/deleteblogs/:blogId", app.requireBlogOwner(app.deleteBlogHandler))

	return app.recoverPanic(app.logRequest(app.enableCORS(app.rateLimit(app.authenticate(router)))))
}
