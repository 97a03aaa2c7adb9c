package streamtape

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// UploadTarget is the provider-issued upload slot files shall be POSTed to.
type UploadTarget struct {
	URL        string `json:"url"`
	ValidUntil string `json:"valid_until"`
}

// UploadURLOptions narrows where and how the upload slot is issued. HTTPOnly
// is a tri-state: nil leaves the provider default untouched.
type UploadURLOptions struct {
	Folder   string
	SHA256   string
	HTTPOnly *bool
}

// UploadURL retrieves a unique upload URL (/file/ul).
func (c *Client) UploadURL(ctx context.Context, opts UploadURLOptions) (UploadTarget, error) {
	params := url.Values{}
	if opts.Folder != "" {
		params.Set("folder", opts.Folder)
	}
	if opts.SHA256 != "" {
		params.Set("sha256", opts.SHA256)
	}
	if opts.HTTPOnly != nil {
		params.Set("httponly", strconv.FormatBool(*opts.HTTPOnly))
	}
	env, err := c.call(ctx, "/file/ul", params)
	if err != nil {
		return UploadTarget{}, err
	}
	var target UploadTarget
	if err := env.objectInto("upload url", &target); err != nil {
		return UploadTarget{}, err
	}
	return target, nil
}

// RemoteUploadRequest describes a provider-managed fetch of a remote URL.
type RemoteUploadRequest struct {
	URL     string
	Folder  string
	Headers string
	Name    string
}

// RemoteUploadTask identifies a queued remote-upload job.
type RemoteUploadTask struct {
	ID     string `json:"id"`
	Folder string `json:"folder"`
}

// AddRemoteUpload queues a remote upload (/remotedl/add).
func (c *Client) AddRemoteUpload(ctx context.Context, req RemoteUploadRequest) (RemoteUploadTask, error) {
	params := url.Values{}
	params.Set("url", req.URL)
	if req.Folder != "" {
		params.Set("folder", req.Folder)
	}
	if req.Headers != "" {
		params.Set("headers", req.Headers)
	}
	if req.Name != "" {
		params.Set("name", req.Name)
	}
	env, err := c.call(ctx, "/remotedl/add", params)
	if err != nil {
		return RemoteUploadTask{}, err
	}
	var task RemoteUploadTask
	if err := env.objectInto("remote upload add", &task); err != nil {
		return RemoteUploadTask{}, err
	}
	return task, nil
}

// RemoveRemoteUpload cancels a remote-upload task (/remotedl/remove). The
// sentinel id "all" removes every task.
func (c *Client) RemoveRemoteUpload(ctx context.Context, id string) (bool, error) {
	params := url.Values{}
	params.Set("id", id)
	env, err := c.call(ctx, "/remotedl/remove", params)
	if err != nil {
		return false, err
	}
	return env.boolean(), nil
}

// RemoteUploadStatus reports the state of a remote-upload task
// (/remotedl/status), relayed verbatim.
func (c *Client) RemoteUploadStatus(ctx context.Context, id string) (map[string]json.RawMessage, error) {
	params := url.Values{}
	params.Set("id", id)
	env, err := c.call(ctx, "/remotedl/status", params)
	if err != nil {
		return nil, err
	}
	return env.object("remote upload status")
}

// ListFolder shows the folders and files inside a folder (/file/listfolder),
// relayed verbatim.
func (c *Client) ListFolder(ctx context.Context, folderID string) (map[string]json.RawMessage, error) {
	params := url.Values{}
	params.Set("folder", folderID)
	env, err := c.call(ctx, "/file/listfolder", params)
	if err != nil {
		return nil, err
	}
	return env.object("list folder")
}

// CreatedFolder carries the ID of a newly created folder.
type CreatedFolder struct {
	FolderID string `json:"folderid"`
}

// CreateFolder creates a folder (/file/createfolder); parentID maps to the
// provider's pid parameter and is optional.
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (CreatedFolder, error) {
	params := url.Values{}
	params.Set("name", name)
	if parentID != "" {
		params.Set("pid", parentID)
	}
	env, err := c.call(ctx, "/file/createfolder", params)
	if err != nil {
		return CreatedFolder{}, err
	}
	var folder CreatedFolder
	if err := env.objectInto("create folder", &folder); err != nil {
		return CreatedFolder{}, err
	}
	return folder, nil
}

// RenameFolder renames a folder (/file/renamefolder). The target ID travels
// as folder and the new name as name.
func (c *Client) RenameFolder(ctx context.Context, folderID, name string) (bool, error) {
	params := url.Values{}
	params.Set("folder", folderID)
	params.Set("name", name)
	env, err := c.call(ctx, "/file/renamefolder", params)
	if err != nil {
		return false, err
	}
	return env.boolean(), nil
}

// DeleteFolder deletes a folder and its contents (/file/deletefolder).
func (c *Client) DeleteFolder(ctx context.Context, folderID string) (bool, error) {
	params := url.Values{}
	params.Set("folder", folderID)
	env, err := c.call(ctx, "/file/deletefolder", params)
	if err != nil {
		return false, err
	}
	return env.boolean(), nil
}

// RenameFile renames a file (/file/rename).
func (c *Client) RenameFile(ctx context.Context, fileID, name string) (bool, error) {
	params := url.Values{}
	params.Set("file", fileID)
	params.Set("name", name)
	env, err := c.call(ctx, "/file/rename", params)
	if err != nil {
		return false, err
	}
	return env.boolean(), nil
}

// MoveFile moves a file into another folder (/file/move).
func (c *Client) MoveFile(ctx context.Context, fileID, folderID string) (bool, error) {
	params := url.Values{}
	params.Set("file", fileID)
	params.Set("folder", folderID)
	env, err := c.call(ctx, "/file/move", params)
	if err != nil {
		return false, err
	}
	return env.boolean(), nil
}

// DeleteFile deletes a file (/file/delete).
func (c *Client) DeleteFile(ctx context.Context, fileID string) (bool, error) {
	params := url.Values{}
	params.Set("file", fileID)
	env, err := c.call(ctx, "/file/delete", params)
	if err != nil {
		return false, err
	}
	return env.boolean(), nil
}

// RunningConverts lists conversions in progress (/file/runningconverts).
func (c *Client) RunningConverts(ctx context.Context) ([]json.RawMessage, error) {
	env, err := c.call(ctx, "/file/runningconverts", url.Values{})
	if err != nil {
		return nil, err
	}
	return env.list("running converts")
}

// FailedConverts lists conversions that failed (/file/failedconverts).
func (c *Client) FailedConverts(ctx context.Context) ([]json.RawMessage, error) {
	env, err := c.call(ctx, "/file/failedconverts", url.Values{})
	if err != nil {
		return nil, err
	}
	return env.list("failed converts")
}

// Thumbnail returns the URL of a file's thumbnail image (/file/getsplash).
func (c *Client) Thumbnail(ctx context.Context, fileID string) (string, error) {
	params := url.Values{}
	params.Set("file", fileID)
	env, err := c.call(ctx, "/file/getsplash", params)
	if err != nil {
		return "", err
	}
	return env.text("thumbnail")
}

// DownloadTicket is the short-lived token required to mint a download link.
// The provider enforces wait time and expiry; the gateway tracks nothing.
type DownloadTicket struct {
	Ticket     string `json:"ticket"`
	WaitTime   int    `json:"wait_time"`
	ValidUntil string `json:"valid_until"`
}

// GetDownloadTicket prepares a download ticket for a file (/file/dlticket).
func (c *Client) GetDownloadTicket(ctx context.Context, fileID string) (DownloadTicket, error) {
	params := url.Values{}
	params.Set("file", fileID)
	env, err := c.call(ctx, "/file/dlticket", params)
	if err != nil {
		return DownloadTicket{}, err
	}
	var ticket DownloadTicket
	if err := env.objectInto("download ticket", &ticket); err != nil {
		return DownloadTicket{}, err
	}
	return ticket, nil
}

// DownloadLink is the final direct download location for a file.
type DownloadLink struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// GetDownloadLink exchanges a ticket for the direct download link (/file/dl).
// This call intentionally carries no account credentials: the ticket alone
// authorizes it, keeping login and key off a URL a browser may fetch.
func (c *Client) GetDownloadLink(ctx context.Context, fileID, ticket, captchaResponse string) (DownloadLink, error) {
	params := url.Values{}
	params.Set("file", fileID)
	params.Set("ticket", ticket)
	if captchaResponse != "" {
		params.Set("captcha_response", captchaResponse)
	}
	env, err := c.callUnauthenticated(ctx, "/file/dl", params)
	if err != nil {
		return DownloadLink{}, err
	}
	var link DownloadLink
	if err := env.objectInto("download link", &link); err != nil {
		return DownloadLink{}, err
	}
	return link, nil
}

// FileInfo checks one or more files (/file/info). fileIDs is relayed to the
// provider exactly as supplied; the result is keyed by file ID.
func (c *Client) FileInfo(ctx context.Context, fileIDs string) (map[string]json.RawMessage, error) {
	params := url.Values{}
	params.Set("file", fileIDs)
	env, err := c.call(ctx, "/file/info", params)
	if err != nil {
		return nil, err
	}
	return env.object("file info")
}
