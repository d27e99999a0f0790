package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/store/mocks"
	"bookcatalog/internal/testutil"
	"bookcatalog/internal/usecase"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	msgs []string
}

func (n *recordingNotifier) Publish(msg string) {
	n.msgs = append(n.msgs, msg)
}

func doBooks(handler *BookHandler, method, target string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	handler.Route(rec, req)
	return rec
}

var createPayload = map[string]string{
	"title":          "Dune",
	"author":         "Herbert",
	"published_date": "1965-08-01",
	"summary":        "A desert planet and its spice",
	"genre":          "SciFi",
}

func TestBookHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := mocks.NewMockBookStore(ctrl)
	notifier := &recordingNotifier{}
	handler := NewBookHandler(mockStore, notifier)

	mockStore.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *entity.Book) error {
			b.ID = 1
			return nil
		})

	rec := doBooks(handler, http.MethodPost, "/books/", createPayload)
	require.Equal(t, http.StatusOK, rec.Code)

	var created entity.Book
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Dune", created.Title)
	assert.Equal(t, "1965-08-01", created.PublishedDate.Format("2006-01-02"))

	require.Len(t, notifier.msgs, 1)
	assert.Equal(t, "New book added: Dune", notifier.msgs[0])
}

func TestBookHandler_Create_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := mocks.NewMockBookStore(ctrl)
	notifier := &recordingNotifier{}
	handler := NewBookHandler(mockStore, notifier)

	tests := []struct {
		name string
		body map[string]string
	}{
		{
			name: "missing title",
			body: map[string]string{"author": "Herbert", "published_date": "1965-08-01"},
		},
		{
			name: "bad date format",
			body: map[string]string{"title": "Dune", "author": "Herbert", "published_date": "August 1965"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doBooks(handler, http.MethodPost, "/books/", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Empty(t, notifier.msgs, "failed creates must not notify")
}

func TestBookHandler_List_ByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := mocks.NewMockBookStore(ctrl)
	notifier := &recordingNotifier{}
	handler := NewBookHandler(mockStore, notifier)

	mockStore.EXPECT().
		GetByID(gomock.Any(), int64(789)).
		Return(testutil.TestBook, nil)

	rec := doBooks(handler, http.MethodGet, "/books/?id=789", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page pageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.Size)
	require.Len(t, page.Items, 1)
	assert.Equal(t, testutil.TestBook.Title, page.Items[0].Title)

	require.Len(t, notifier.msgs, 1)
	assert.Equal(t, "Book found: Dune", notifier.msgs[0])
}

func TestBookHandler_List_ByID_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := mocks.NewMockBookStore(ctrl)
	notifier := &recordingNotifier{}
	handler := NewBookHandler(mockStore, notifier)

	mockStore.EXPECT().
		GetByID(gomock.Any(), int64(404)).
		Return(entity.Book{}, usecase.ErrNotFound)

	rec := doBooks(handler, http.MethodGet, "/books/?id=404", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, notifier.msgs)
}

func TestBookHandler_List_Paginated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := mocks.NewMockBookStore(ctrl)
	notifier := &recordingNotifier{}
	handler := NewBookHandler(mockStore, notifier)

	tests := []struct {
		name         string
		target       string
		expectedPage int
		expectedSize int
	}{
		{name: "defaults", target: "/books/", expectedPage: 1, expectedSize: 20},
		{name: "explicit page and size", target: "/books/?page=3&size=5", expectedPage: 3, expectedSize: 5},
		{name: "size above bound falls back", target: "/books/?size=500", expectedPage: 1, expectedSize: 20},
		{name: "page below bound falls back", target: "/books/?page=0", expectedPage: 1, expectedSize: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore.EXPECT().
				ListPage(gomock.Any(), tt.expectedPage, tt.expectedSize).
				Return([]entity.Book{testutil.TestBook}, 42, nil)

			rec := doBooks(handler, http.MethodGet, tt.target, nil)
			require.Equal(t, http.StatusOK, rec.Code)

			var page pageResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
			assert.Equal(t, 42, page.Total)
			assert.Equal(t, tt.expectedPage, page.Page)
			assert.Equal(t, tt.expectedSize, page.Size)
		})
	}

	assert.Empty(t, notifier.msgs, "listing must not notify")
}

func TestBookHandler_List_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := mocks.NewMockBookStore(ctrl)
	handler := NewBookHandler(mockStore, &recordingNotifier{})

	mockStore.EXPECT().
		ListPage(gomock.Any(), 1, 20).
		Return(nil, 0, nil)

	rec := doBooks(handler, http.MethodGet, "/books/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestBookHandler_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := mocks.NewMockBookStore(ctrl)
	notifier := &recordingNotifier{}
	handler := NewBookHandler(mockStore, notifier)

	mockStore.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *entity.Book) error {
			assert.Equal(t, int64(7), b.ID)
			assert.Equal(t, "Dune", b.Title)
			return nil
		})

	rec := doBooks(handler, http.MethodPut, "/books/7", createPayload)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated entity.Book
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, int64(7), updated.ID)

	require.Len(t, notifier.msgs, 1)
	assert.Equal(t, "Book updated: Dune", notifier.msgs[0])
}

func TestBookHandler_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := mocks.NewMockBookStore(ctrl)
	notifier := &recordingNotifier{}
	handler := NewBookHandler(mockStore, notifier)

	mockStore.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		Return(usecase.ErrNotFound)

	rec := doBooks(handler, http.MethodPut, "/books/404", createPayload)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, notifier.msgs)
}

func TestBookHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := mocks.NewMockBookStore(ctrl)
	notifier := &recordingNotifier{}
	handler := NewBookHandler(mockStore, notifier)

	mockStore.EXPECT().
		GetByID(gomock.Any(), int64(789)).
		Return(testutil.TestBook, nil)
	mockStore.EXPECT().
		Delete(gomock.Any(), int64(789)).
		Return(nil)

	rec := doBooks(handler, http.MethodDelete, "/books/789", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Book deleted successfully")

	require.Len(t, notifier.msgs, 1)
	assert.Equal(t, "Book deleted: Dune", notifier.msgs[0])
}

func TestBookHandler_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := mocks.NewMockBookStore(ctrl)
	notifier := &recordingNotifier{}
	handler := NewBookHandler(mockStore, notifier)

	mockStore.EXPECT().
		GetByID(gomock.Any(), int64(404)).
		Return(entity.Book{}, usecase.ErrNotFound)

	rec := doBooks(handler, http.MethodDelete, "/books/404", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, notifier.msgs)
}

func TestBookHandler_Route_BadPaths(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := mocks.NewMockBookStore(ctrl)
	handler := NewBookHandler(mockStore, &recordingNotifier{})

	tests := []struct {
		name           string
		method         string
		target         string
		expectedStatus int
	}{
		{name: "non-numeric id", method: http.MethodDelete, target: "/books/abc", expectedStatus: http.StatusNotFound},
		{name: "nested path", method: http.MethodDelete, target: "/books/1/extra", expectedStatus: http.StatusNotFound},
		{name: "unsupported collection method", method: http.MethodPatch, target: "/books/", expectedStatus: http.StatusMethodNotAllowed},
		{name: "unsupported item method", method: http.MethodPost, target: "/books/1", expectedStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doBooks(handler, tt.method, tt.target, nil)
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
