package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"

	"jobvibes_backend/internal/imageprocessor"
	"jobvibes_backend/internal/models"
	"jobvibes_backend/internal/repositories"
	"jobvibes_backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploadService(t *testing.T, env *testEnv) UploadService {
	t.Helper()

	store, err := storage.NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)
	return NewUploadService(
		repositories.NewUploadRepository(env.db),
		repositories.NewUserRepository(env.db),
		store,
		imageprocessor.NewProcessor(70),
	)
}

func multipartHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="file"; filename="` + filename + `"`},
		"Content-Type":        {contentType},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestUploadIntroVideo_ActivatesAccount(t *testing.T) {
	env := newTestEnv(t)
	uploads := newUploadService(t, env)
	user := env.createUser(t, "+100", models.UserRoleCandidate)

	var before models.User
	require.NoError(t, env.db.First(&before, "id = ?", user.ID).Error)
	require.Equal(t, models.UserStatusInactive, before.Status)

	header := multipartHeader(t, "intro.mp4", "video/mp4", []byte("not really a video"))
	resp, err := uploads.Upload(context.Background(), user.ID, header, FileTypeIntroVideo)
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, env.db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, resp.URL, stored.IntroVideoURL)
	assert.Equal(t, models.UserStatusActive, stored.Status)
}

func TestUploadProfileImage_DoesNotActivateAccount(t *testing.T) {
	env := newTestEnv(t)
	uploads := newUploadService(t, env)
	user := env.createUser(t, "+100", models.UserRoleCandidate)

	// Small enough to skip transcoding; the bytes are never decoded.
	header := multipartHeader(t, "avatar.png", "image/png", []byte("png bytes"))
	resp, err := uploads.Upload(context.Background(), user.ID, header, FileTypeProfileImage)
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, env.db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, resp.URL, stored.ProfileImage)
	assert.Equal(t, models.UserStatusInactive, stored.Status)
}

func TestUpload_RejectsDisallowedContentType(t *testing.T) {
	env := newTestEnv(t)
	uploads := newUploadService(t, env)
	user := env.createUser(t, "+100", models.UserRoleCandidate)

	header := multipartHeader(t, "script.sh", "application/x-sh", []byte("#!/bin/sh"))
	_, err := uploads.Upload(context.Background(), user.ID, header, FileTypeMedia)
	require.Error(t, err)
}
