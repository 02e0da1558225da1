package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/sessions"
)

// Form field names posted by the pages.
const (
	fieldAction    = "actie"
	fieldBookID    = "boek_id"
	fieldTerm      = "zoekterm"
	fieldSort      = "sorteer"
	fieldTitle     = "titel"
	fieldFirstName = "voornaam"
	fieldLastName  = "achternaam"
	fieldReview    = "review"

	actionDelete = "verwijder"
	actionUpdate = "update"
)

type UIController struct {
	store   BookStore
	auditor AuditLogger
	flash   FlashStore
}

// NewUIController creates the controller behind the HTML pages. auditor and
// flash may be nil.
func NewUIController(store BookStore, auditor AuditLogger, flash FlashStore) *UIController {
	return &UIController{
		store:   store,
		auditor: auditor,
		flash:   flash,
	}
}

// Index renders the full book list.
// GET /
func (controller *UIController) Index(c *gin.Context) {
	rows, err := controller.store.ListBooks(c.Request.Context())
	if err != nil {
		uiInternalError(c, err, "list books")
		return
	}

	c.HTML(http.StatusOK, templateIndex, controller.pageData(c, gin.H{
		"Books": rows,
		"Term":  "",
		"Sort":  string(books.DefaultSortOrder),
	}))
}

// IndexPost dispatches the forms posted to the list page: delete, edit,
// search and add.
// POST /
func (controller *UIController) IndexPost(c *gin.Context) {
	switch c.PostForm(fieldAction) {
	case actionDelete:
		controller.deleteBook(c)
	case actionUpdate:
		id, ok := parseFormID(c, fieldBookID)
		if !ok {
			c.String(http.StatusBadRequest, "invalid "+fieldBookID)
			return
		}
		c.Redirect(http.StatusSeeOther, "/update/"+strconv.FormatUint(uint64(id), 10))
	default:
		if isSearch(c) {
			controller.search(c)
			return
		}
		controller.createBook(c)
	}
}

// EditPage renders the edit form for one book.
// GET /update/:id
func (controller *UIController) EditPage(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.String(http.StatusBadRequest, "invalid book id")
		return
	}

	row, err := controller.store.GetBook(c.Request.Context(), id)
	if errors.Is(err, books.ErrBookNotFound) {
		c.HTML(http.StatusNotFound, templateUpdate, controller.pageData(c, gin.H{
			"NotFound": true,
			"BookID":   id,
		}))
		return
	}
	if err != nil {
		uiInternalError(c, err, "get book")
		return
	}

	c.HTML(http.StatusOK, templateUpdate, controller.pageData(c, gin.H{
		"Book":   row,
		"BookID": id,
	}))
}

// EditPost saves the edit form.
// POST /update/:id
func (controller *UIController) EditPost(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.String(http.StatusBadRequest, "invalid book id")
		return
	}

	values, ok := requiredFields(c)
	if !ok {
		c.String(http.StatusBadRequest, "title, first name, last name and review are required")
		return
	}

	update := books.BookUpdate{
		Title:      values[fieldTitle],
		FirstName:  values[fieldFirstName],
		LastName:   values[fieldLastName],
		ReviewText: values[fieldReview],
	}
	err := controller.store.UpdateBook(c.Request.Context(), id, update)
	if controller.auditor != nil {
		controller.auditor.LogUpdate(requestInfo(c), id, update.Title, err)
	}
	if err != nil {
		respondStoreError(c, err, "update book")
		return
	}

	controller.putFlash(c, sessions.FlashSuccess, fmt.Sprintf("Saved %q", update.Title))
	c.Redirect(http.StatusSeeOther, "/")
}

func (controller *UIController) search(c *gin.Context) {
	term := c.PostForm(fieldTerm)
	order := books.ParseSortOrder(c.PostForm(fieldSort))

	rows, err := controller.store.SearchBooks(c.Request.Context(), term, order)
	if err != nil {
		uiInternalError(c, err, "search books")
		return
	}

	c.HTML(http.StatusOK, templateIndex, controller.pageData(c, gin.H{
		"Books": rows,
		"Term":  term,
		"Sort":  string(order),
	}))
}

func (controller *UIController) createBook(c *gin.Context) {
	values, ok := requiredFields(c)
	if !ok {
		c.String(http.StatusBadRequest, "title, first name, last name and review are required")
		return
	}

	nb := books.NewBook{
		Title:      values[fieldTitle],
		FirstName:  values[fieldFirstName],
		LastName:   values[fieldLastName],
		ReviewText: values[fieldReview],
	}
	id, err := controller.store.AddBookWithReview(c.Request.Context(), nb)
	if controller.auditor != nil {
		controller.auditor.LogCreate(requestInfo(c), id, nb.Title, err)
	}
	if err != nil {
		respondStoreError(c, err, "add book")
		return
	}

	controller.putFlash(c, sessions.FlashSuccess, fmt.Sprintf("Added %q", nb.Title))
	c.Redirect(http.StatusSeeOther, "/")
}

func (controller *UIController) deleteBook(c *gin.Context) {
	id, ok := parseFormID(c, fieldBookID)
	if !ok {
		c.String(http.StatusBadRequest, "invalid "+fieldBookID)
		return
	}

	err := controller.store.DeleteBook(c.Request.Context(), id)
	if controller.auditor != nil {
		controller.auditor.LogDelete(requestInfo(c), id, err)
	}
	if err != nil {
		uiInternalError(c, err, "delete book")
		return
	}

	controller.putFlash(c, sessions.FlashSuccess, "Book deleted")
	c.Redirect(http.StatusSeeOther, "/")
}

func (controller *UIController) putFlash(c *gin.Context, kind sessions.FlashKind, message string) {
	if controller.flash != nil {
		controller.flash.PutFlash(c.Request.Context(), kind, message)
	}
}

// requiredFields returns the four book fields, or false when any of them was
// not submitted at all. Empty values are accepted.
func requiredFields(c *gin.Context) (map[string]string, bool) {
	values := make(map[string]string, 4)
	for _, field := range []string{fieldTitle, fieldFirstName, fieldLastName, fieldReview} {
		value, exists := c.GetPostForm(field)
		if !exists {
			return nil, false
		}
		values[field] = value
	}
	return values, true
}

// isSearch reports whether a POST to / is a search submission rather than
// an add-book form.
func isSearch(c *gin.Context) bool {
	switch c.PostForm(fieldAction) {
	case actionDelete, actionUpdate:
		return false
	}
	_, hasTerm := c.GetPostForm(fieldTerm)
	_, hasSort := c.GetPostForm(fieldSort)
	return hasTerm || hasSort
}

// AllowInReadOnly lets the list page keep working in read-only mode: search
// submissions and the edit redirect do not change any data.
func AllowInReadOnly(c *gin.Context) bool {
	if c.Request.Method != http.MethodPost || c.Request.URL.Path != "/" {
		return false
	}
	return isSearch(c) || c.PostForm(fieldAction) == actionUpdate
}

// respondStoreError maps book store errors onto status codes for the form
// handlers.
func respondStoreError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, books.ErrBookNotFound):
		c.String(http.StatusNotFound, "book not found")
	case errors.Is(err, books.ErrMultipleAuthors), errors.Is(err, books.ErrMultipleReviews):
		c.String(http.StatusConflict, err.Error())
	default:
		uiInternalError(c, err, context)
	}
}

func uiInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.String(http.StatusInternalServerError, "Something went wrong, please try again")
}
