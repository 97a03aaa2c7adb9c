package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurahub-gateway/internal/streamtape"
)

// newTestHandler backs the Handler with a stub provider. The stub answers
// each remote path with the configured envelope body and records the query it
// received.
func newTestHandler(t *testing.T, responses map[string]string) (*Handler, *providerRecorder) {
	t.Helper()
	recorder := &providerRecorder{responses: responses, queries: make(map[string]url.Values)}
	server := httptest.NewServer(recorder)
	t.Cleanup(server.Close)

	tape := streamtape.New(streamtape.Config{
		BaseURL:    server.URL,
		Login:      "gw-login",
		Key:        "gw-key",
		HTTPClient: server.Client(),
	})
	return NewHandler(tape, nil), recorder
}

type providerRecorder struct {
	responses map[string]string
	queries   map[string]url.Values
	calls     int
}

func (p *providerRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.calls++
	p.queries[r.URL.Path] = r.URL.Query()
	body, ok := p.responses[r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRootBanner(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.Root(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["message"], "running")
}

func TestRootUnknownPath(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.Root(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetUploadURLRelaysTarget(t *testing.T) {
	handler, provider := newTestHandler(t, map[string]string{
		"/file/ul": `{"status":200,"result":{"url":"https://upload.example.com/slot","valid_until":"2026-01-01 00:00:00"}}`,
	})

	rec := httptest.NewRecorder()
	handler.GetUploadURL(rec, httptest.NewRequest(http.MethodGet, "/get_upload_url?folder=f1&httponly=true", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "https://upload.example.com/slot", body["url"])
	assert.Equal(t, "2026-01-01 00:00:00", body["valid_until"])
	assert.Equal(t, "true", provider.queries["/file/ul"].Get("httponly"))
	assert.Equal(t, "gw-login", provider.queries["/file/ul"].Get("login"))
}

func TestGetUploadURLRejectsBadBool(t *testing.T) {
	handler, provider := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.GetUploadURL(rec, httptest.NewRequest(http.MethodGet, "/get_upload_url?httponly=maybe", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, provider.calls, "invalid input must not reach the provider")
}

func TestAddRemoteUploadRequiresURL(t *testing.T) {
	handler, provider := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.AddRemoteUpload(rec, httptest.NewRequest(http.MethodPost, "/remote_upload/add", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, provider.calls)
}

func TestAddRemoteUploadRelaysTask(t *testing.T) {
	handler, provider := newTestHandler(t, map[string]string{
		"/remotedl/add": `{"status":200,"result":{"id":"task1","folder":"f1"}}`,
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/remote_upload/add?url=https%3A%2F%2Forigin.example.com%2Fv.mp4&folder=f1&name=v.mp4", nil)
	handler.AddRemoteUpload(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "task1", body["id"])
	assert.Equal(t, "f1", body["folder"])
	query := provider.queries["/remotedl/add"]
	assert.Equal(t, "https://origin.example.com/v.mp4", query.Get("url"))
	assert.Equal(t, "v.mp4", query.Get("name"))
}

func TestRemoveRemoteUploadAll(t *testing.T) {
	handler, provider := newTestHandler(t, map[string]string{
		"/remotedl/remove": `{"status":200,"result":true}`,
	})

	rec := httptest.NewRecorder()
	handler.RemoveRemoteUpload(rec, httptest.NewRequest(http.MethodDelete, "/remote_upload/remove/all", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["result"])
	assert.Equal(t, "all", provider.queries["/remotedl/remove"].Get("id"))
}

func TestRemoveRemoteUploadMissingID(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.RemoveRemoteUpload(rec, httptest.NewRequest(http.MethodDelete, "/remote_upload/remove/", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListContentsRequiresFolderID(t *testing.T) {
	handler, provider := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.ListContents(rec, httptest.NewRequest(http.MethodGet, "/file_manager/list_contents", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, provider.calls)
}

func TestListContentsRelaysListing(t *testing.T) {
	handler, provider := newTestHandler(t, map[string]string{
		"/file/listfolder": `{"status":200,"result":{"folders":[{"id":"f2","name":"sub"}],"files":[{"linkid":"abc","name":"v.mp4"}]}}`,
	})

	rec := httptest.NewRecorder()
	handler.ListContents(rec, httptest.NewRequest(http.MethodGet, "/file_manager/list_contents?folder_id=f1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body, "folders")
	assert.Contains(t, body, "files")
	assert.Equal(t, "f1", provider.queries["/file/listfolder"].Get("folder"))
}

func TestCreateFolderRelaysID(t *testing.T) {
	handler, provider := newTestHandler(t, map[string]string{
		"/file/createfolder": `{"status":200,"result":{"folderid":"42"}}`,
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/file_manager/create_folder?name=movies&parent_folder_id=root1", nil)
	handler.CreateFolder(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"folderid": "42"}, decodeBody(t, rec))
	query := provider.queries["/file/createfolder"]
	assert.Equal(t, "movies", query.Get("name"))
	assert.Equal(t, "root1", query.Get("pid"))
}

func TestDeleteFolderPropagatesProviderError(t *testing.T) {
	handler, _ := newTestHandler(t, map[string]string{
		"/file/deletefolder": `{"status":400,"msg":"Folder not found"}`,
	})

	rec := httptest.NewRecorder()
	handler.DeleteFolder(rec, httptest.NewRequest(http.MethodDelete, "/file_manager/delete_folder/gone", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Folder not found", decodeBody(t, rec)["error"])
}

func TestRenameFolderSuccess(t *testing.T) {
	handler, provider := newTestHandler(t, map[string]string{
		"/file/renamefolder": `{"status":200,"result":true}`,
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/file_manager/rename_folder/f42?new_name=holiday", nil)
	handler.RenameFolder(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["result"])
	query := provider.queries["/file/renamefolder"]
	assert.Equal(t, "f42", query.Get("folder"))
	assert.Equal(t, "holiday", query.Get("name"))
}

func TestRenameFolderRequiresNewName(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.RenameFolder(rec, httptest.NewRequest(http.MethodPut, "/file_manager/rename_folder/f42", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRenameFileWrongMethod(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.RenameFile(rec, httptest.NewRequest(http.MethodGet, "/file_manager/rename_file/abc?new_name=x", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDeleteFileCoercesNonBooleanResult(t *testing.T) {
	handler, _ := newTestHandler(t, map[string]string{
		"/file/delete": `{"status":200,"result":"true"}`,
	})

	rec := httptest.NewRecorder()
	handler.DeleteFile(rec, httptest.NewRequest(http.MethodDelete, "/file_manager/delete_file/abc", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["result"])
}

func TestMoveFileRequiresDestination(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.MoveFile(rec, httptest.NewRequest(http.MethodPut, "/file_manager/move_file/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunningConvertsRelaysList(t *testing.T) {
	handler, _ := newTestHandler(t, map[string]string{
		"/file/runningconverts": `{"status":200,"result":[{"name":"a.mp4","progress":42.5}]}`,
	})

	rec := httptest.NewRecorder()
	handler.RunningConverts(rec, httptest.NewRequest(http.MethodGet, "/converts/running", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "a.mp4", list[0]["name"])
}

func TestFailedConvertsShapeMismatchIsInternal(t *testing.T) {
	handler, _ := newTestHandler(t, map[string]string{
		"/file/failedconverts": `{"status":200,"result":{"oops":true}}`,
	})

	rec := httptest.NewRecorder()
	handler.FailedConverts(rec, httptest.NewRequest(http.MethodGet, "/converts/failed", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "failed converts")
}

func TestThumbnailReshapesString(t *testing.T) {
	handler, _ := newTestHandler(t, map[string]string{
		"/file/getsplash": `{"status":200,"result":"https://t.example.com/abc.jpg"}`,
	})

	rec := httptest.NewRecorder()
	handler.Thumbnail(rec, httptest.NewRequest(http.MethodGet, "/thumbnail/abc", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://t.example.com/abc.jpg", decodeBody(t, rec)["thumbnail_url"])
}

func TestDownloadTicketRelaysFields(t *testing.T) {
	handler, _ := newTestHandler(t, map[string]string{
		"/file/dlticket": `{"status":200,"result":{"ticket":"tk","wait_time":5,"valid_until":"2026-01-01 00:00:00"}}`,
	})

	rec := httptest.NewRecorder()
	handler.DownloadTicket(rec, httptest.NewRequest(http.MethodGet, "/stream/ticket/abc", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "tk", body["ticket"])
	assert.Equal(t, float64(5), body["wait_time"])
}

func TestDownloadLinkRequiresTicket(t *testing.T) {
	handler, provider := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.DownloadLink(rec, httptest.NewRequest(http.MethodGet, "/stream/link/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, provider.calls)
}

func TestDownloadLinkOmitsCredentials(t *testing.T) {
	handler, provider := newTestHandler(t, map[string]string{
		"/file/dl": `{"status":200,"result":{"name":"v.mp4","size":2048,"url":"https://cdn.example.com/v.mp4"}}`,
	})

	rec := httptest.NewRecorder()
	handler.DownloadLink(rec, httptest.NewRequest(http.MethodGet, "/stream/link/abc?ticket=tk", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "v.mp4", body["name"])
	assert.Equal(t, float64(2048), body["size"])
	query := provider.queries["/file/dl"]
	_, hasLogin := query["login"]
	_, hasKey := query["key"]
	assert.False(t, hasLogin)
	assert.False(t, hasKey)
}

func TestFileInfoRelaysMap(t *testing.T) {
	handler, provider := newTestHandler(t, map[string]string{
		"/file/info": `{"status":200,"result":{"id1":{"status":200},"id2":{"status":404}}}`,
	})

	rec := httptest.NewRecorder()
	handler.FileInfo(rec, httptest.NewRequest(http.MethodGet, "/file_info/id1,id2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body, "id1")
	assert.Contains(t, body, "id2")
	assert.Equal(t, "id1,id2", provider.queries["/file/info"].Get("file"))
}

func TestFileInfoRejectsTooManyIDs(t *testing.T) {
	handler, provider := newTestHandler(t, nil)

	ids := "id0"
	for i := 1; i <= 100; i++ {
		ids += ",id"
	}
	rec := httptest.NewRecorder()
	handler.FileInfo(rec, httptest.NewRequest(http.MethodGet, "/file_info/"+ids, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, provider.calls)
}

func TestTransportFailureIsBadGateway(t *testing.T) {
	recorder := &providerRecorder{responses: nil, queries: make(map[string]url.Values)}
	server := httptest.NewServer(recorder)
	tape := streamtape.New(streamtape.Config{
		BaseURL:    server.URL,
		Login:      "l",
		Key:        "k",
		HTTPClient: server.Client(),
	})
	server.Close()
	handler := NewHandler(tape, nil)

	rec := httptest.NewRecorder()
	handler.RunningConverts(rec, httptest.NewRequest(http.MethodGet, "/converts/running", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
