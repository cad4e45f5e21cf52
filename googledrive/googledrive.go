// Package googledrive shares images through Google Drive: images are uploaded
// into a fixed folder path and made readable by anyone with the link.
package googledrive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"os/exec"
	"runtime"
	"strings"

	"github.com/golang/glog"
	"github.com/janpfeifer/imagehandler/codec"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Manager is the object that manages Google Drive's credentials, authentication,
// token and the folder images are shared into.
type Manager struct {
	path []string

	jsonToken string
	config    *oauth2.Config
	token     *oauth2.Token
	service   *drive.Service

	SetToken           func(string)
	EnterAuthorization func() string
}

// New creates a new Google Drive Manager from the application's OAuth2 client
// credentials (the JSON downloaded from the Google API console).
//
// All files are created within the fixed given `path` (list of folder names).
//
// A previously saved authorization `token` can be passed to reuse authorization. If none are available simply pass
// an empty string here, and a new authorization will be requested.
//
// Callbacks:
//
// * setToken: called whenever the token that gives temporary permission to access Google Drive is updated.
//   It can be saved and passed back later in `token`. If nil, the token is "forgotten" at the end of the program.
// * enterAuthorization: when a new token is required, the Manager opens the browser with Google
//   to ask for authorization, and then calls this function to get the authorization code the user
//   was given.
//
// May return an error if application credentials are wrong.
func New(ctx context.Context, credentialsJSON []byte, path []string, token string,
	setToken func(token string), enterAuthorization func() string) (*Manager, error) {
	m := &Manager{
		path:               path,
		jsonToken:          token,
		SetToken:           setToken,
		EnterAuthorization: enterAuthorization,
	}
	var err error
	m.config, err = google.ConfigFromJSON(credentialsJSON,
		/* Scope of authorizations: */ drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client credentials: %w", err)
	}

	if m.jsonToken != "" {
		tok := &oauth2.Token{}
		err = json.NewDecoder(strings.NewReader(m.jsonToken)).Decode(tok)
		if err != nil {
			glog.Errorf("unable to parse token from what was previously saved, ignoring it: %s", err)
			m.jsonToken = ""
		} else {
			m.token = tok
		}
	}

	client, err := m.getClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	m.service, err = drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve GoogleDrive client: %w", err)
	}
	return m, nil
}

// NewWithService creates a Manager that uses an already authorized Drive
// service.
func NewWithService(path []string, service *drive.Service) *Manager {
	return &Manager{path: path, service: service}
}

// getClient acquires a token if there is none, and returns a client using it.
func (m *Manager) getClient(ctx context.Context) (*http.Client, error) {
	if m.token == nil {
		var err error
		m.token, err = m.getTokenFromWeb(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get authorization from the web: %w", err)
		}
		var b strings.Builder
		_ = json.NewEncoder(&b).Encode(m.token)
		m.jsonToken = b.String()
		if m.SetToken != nil {
			m.SetToken(m.jsonToken)
		}
	}
	return m.config.Client(ctx, m.token), nil
}

// getTokenFromWeb requests a token from the web, then returns the retrieved token.
func (m *Manager) getTokenFromWeb(ctx context.Context) (*oauth2.Token, error) {
	if m.EnterAuthorization == nil {
		return nil, fmt.Errorf("no saved GoogleDrive token and no way to enter an authorization")
	}
	// Scope of authorization is given in the config object.
	authURL := m.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	if err := openurl(authURL); err != nil {
		glog.Warningf("Failed to open browser (%v), authorize at %s", err, authURL)
	}
	authCode := m.EnterAuthorization()
	if authCode == "" {
		return nil, fmt.Errorf("no GoogleDrive authorization given")
	}

	tok, err := m.config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web with authorization given: %w", err)
	}
	return tok, nil
}

// ShareImage uploads img encoded in the given format (see package codec) as
// `name.<format>`, makes it readable by anyone with the link and returns the link.
func (m *Manager) ShareImage(ctx context.Context, name string, img image.Image, format string) (url string, err error) {
	if img == nil {
		return "", fmt.Errorf("no image to share as %q", name)
	}
	imgFormat, err := codec.Lookup(format)
	if err != nil {
		return "", err
	}
	var content bytes.Buffer
	if err = imgFormat.Encode(&content, img, nil); err != nil {
		return "", err
	}

	parentId, err := m.createPath(ctx)
	if err != nil {
		return "", err
	}

	f := &drive.File{
		MimeType: imgFormat.MimeType,
		Name:     name + "." + strings.ToLower(format),
		Parents:  []string{parentId},
	}
	f, err = m.service.Files.Create(f).
		Context(ctx).
		Media(bytes.NewReader(content.Bytes())).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	glog.V(2).Infof("Returned file: %+v", f)

	// Make uploaded image visible (but not writeable) to all.
	_, err = m.service.Permissions.Create(f.Id, &drive.Permission{
		AllowFileDiscovery: false,
		Role:               "reader",
		Type:               "anyone",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create shared read permissions for file name=%q id=%q: %w",
			f.Name, f.Id, err)
	}

	// Get link to image.
	f2, err := m.service.Files.Get(f.Id).Fields("webViewLink").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get shared link to file name=%q id=%q: %w",
			f.Name, f.Id, err)
	}
	glog.V(2).Infof("- WebLinkView=%s", f2.WebViewLink)
	return f2.WebViewLink, nil
}

const folderMimeType = "application/vnd.google-apps.folder"

// createPath creates the path for the manager, if it doesn't yet exist, and
// returns the id of its last folder.
func (m *Manager) createPath(ctx context.Context) (id string, err error) {
	var parents []string
	subPath := m.path

	id = "root"
	for len(subPath) > 0 {
		fileList, err := m.service.Files.List().
			Q(fmt.Sprintf("mimeType = '%s' and trashed=false and '%s' in parents and name='%s'",
				folderMimeType, id, subPath[0])).
			Context(ctx).
			Do()
		if err != nil {
			err = fmt.Errorf("failed to find subdirectory %q in %v: %w", subPath[0], parents, err)
			glog.Errorf("googledrive.Manager.createPath: %v", err)
			return "", err
		}
		if len(fileList.Files) == 0 {
			f := &drive.File{
				MimeType: folderMimeType,
				Name:     subPath[0],
				Parents:  []string{id},
			}
			f, err = m.service.Files.Create(f).
				Context(ctx).
				Do()
			if err != nil {
				return "", fmt.Errorf("failed to create sub-folder %q in %v: %w", subPath[0], parents, err)
			}
			id = f.Id
		} else {
			// Directory found: take the first one, since GoogleDrive allows multiple files/folders with the same name.
			id = fileList.Files[0].Id
		}
		glog.V(2).Infof("Path part %q: id=%q", subPath[0], id)
		parents = append(parents, subPath[0])
		subPath = subPath[1:]
	}
	return id, nil
}

func openurl(url string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		return exec.Command("open", url).Start()
	}
	return fmt.Errorf("unsupported platform %q -- don't know how to open a browser", runtime.GOOS)
}
