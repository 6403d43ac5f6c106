package handlers_test

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aminebkr/linkup-backend/internal/handlers"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPosts(t *testing.T) (*echo.Echo, *fakeUserRepo, *fakePostRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	postRepo := newFakePostRepo()
	e := newEcho()
	handlers.NewPostHandler(postRepo, userRepo, t.TempDir()).RegisterPostRoutes(e.Group("/api/posts"))
	return e, userRepo, postRepo
}

func TestCreatePostWithUploads(t *testing.T) {
	e, userRepo, postRepo := setupPosts(t)
	alice := userRepo.addUser("alice", "a@x.com")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("userId", alice.ID.Hex()))
	require.NoError(t, w.WriteField("desc", "my first post"))
	for _, name := range []string{"one.jpg", "two.jpg"} {
		fw, err := w.CreateFormFile("uploads", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/posts", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "my first post", resp["desc"])
	assert.Equal(t, "alice", resp["username"])
	assert.Len(t, resp["imgs"], 2)

	posts, err := postRepo.GetPostsByUserID(context.Background(), alice.ID.Hex())
	require.NoError(t, err)
	require.Len(t, posts, 1)
}

func TestCreatePostUnknownUser(t *testing.T) {
	e, _, _ := setupPosts(t)

	form := "userId=64b000000000000000000000&desc=hi"
	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(form))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdatePostOwnerOnly(t *testing.T) {
	e, userRepo, postRepo := setupPosts(t)
	alice := userRepo.addUser("alice", "a@x.com")
	bob := userRepo.addUser("bob", "b@x.com")
	post := postRepo.addPost(alice.ID.Hex(), "original")

	putJSON := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/api/posts/"+post.ID.Hex(), strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	// non-owner is rejected
	rec := putJSON(fmt.Sprintf(`{"userId":%q,"desc":"hijacked"}`, bob.ID.Hex()))
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "original", postRepo.get(post.ID.Hex()).Desc)

	// owner may edit
	rec = putJSON(fmt.Sprintf(`{"userId":%q,"desc":"edited"}`, alice.ID.Hex()))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "edited", postRepo.get(post.ID.Hex()).Desc)
}

func TestDeletePost(t *testing.T) {
	e, userRepo, postRepo := setupPosts(t)
	alice := userRepo.addUser("alice", "a@x.com")
	post := postRepo.addPost(alice.ID.Hex(), "to delete")

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/"+post.ID.Hex(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Nil(t, postRepo.get(post.ID.Hex()))

	// deleting again: gone
	req = httptest.NewRequest(http.MethodDelete, "/api/posts/"+post.ID.Hex(), nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetUserPosts(t *testing.T) {
	e, userRepo, postRepo := setupPosts(t)
	alice := userRepo.addUser("alice", "a@x.com")
	bob := userRepo.addUser("bob", "b@x.com")
	postRepo.addPost(alice.ID.Hex(), "a1")
	postRepo.addPost(bob.ID.Hex(), "b1")
	postRepo.addPost(alice.ID.Hex(), "a2")

	rec := get(e, "/api/posts/user/"+alice.ID.Hex())
	require.Equal(t, http.StatusOK, rec.Code)

	posts := feedPosts(t, rec)
	assert.Len(t, posts, 2)
}
