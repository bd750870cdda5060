// Package registrytest provides an in-process fake registry for tests.
//
// The fake serves the metadata, download and upload endpoints on an
// httptest.Server and records every request it handles:
//
//	srv := registrytest.New(t)
//	srv.AddPackage("Author", "Mod", "1.0.0", "Other-Lib-2.0.0")
//	client := registry.NewClient(srv.URL)
package registrytest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tstore/pkg/registry"
)

// Upload is a recorded upload request.
type Upload struct {
	Authorization string
	Metadata      string
	Filename      string
	Archive       []byte
}

// Server is a fake registry. All methods are safe for concurrent use.
type Server struct {
	*httptest.Server

	// Token, when set, is the only bearer token accepted by the upload endpoint.
	Token string
	// UploadStatus and UploadBody override the upload response when
	// UploadStatus is non-zero.
	UploadStatus int
	UploadBody   string

	mu       sync.Mutex
	packages map[string][]byte // "namespace/name" -> response body
	status   map[string]int    // "namespace/name" -> forced status
	archives map[string][]byte // download path -> archive bytes
	fetches  []string          // "namespace-name" per metadata request
	uploads  []Upload
}

// New starts a fake registry that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		packages: make(map[string][]byte),
		status:   make(map[string]int),
		archives: make(map[string][]byte),
	}

	r := chi.NewRouter()
	r.Get("/experimental/package/{namespace}/{name}/", s.handlePackage)
	r.Post("/experimental/package/upload/", s.handleUpload)
	r.Get("/package/download/{namespace}/{name}/{version}/", s.handleDownload)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// AddPackage registers a package whose latest version declares deps, and
// serves an archive for it. The archive content is ArchiveContent(...).
func (s *Server) AddPackage(namespace, name, version string, deps ...string) *registry.Package {
	fullName := namespace + "-" + name
	download := fmt.Sprintf("%s/package/download/%s/%s/%s/", s.URL, namespace, name, version)
	if deps == nil {
		deps = []string{}
	}
	pkg := &registry.Package{
		Namespace:  namespace,
		Name:       name,
		FullName:   fullName,
		Owner:      namespace,
		PackageURL: fmt.Sprintf("%s/package/%s/%s/", s.URL, namespace, name),
		Latest: registry.Version{
			Namespace:     namespace,
			Name:          name,
			VersionNumber: version,
			FullName:      fullName + "-" + version,
			Dependencies:  deps,
			DownloadURL:   download,
			IsActive:      true,
		},
		CommunityListings: []registry.CommunityListing{},
	}
	data, _ := json.Marshal(pkg)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.packages[namespace+"/"+name] = data
	s.archives[strings.TrimPrefix(download, s.URL)] = ArchiveContent(fullName, version)
	return pkg
}

// SetRawPackage serves body verbatim for namespace/name with status.
func (s *Server) SetRawPackage(namespace, name string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packages[namespace+"/"+name] = []byte(body)
	s.status[namespace+"/"+name] = status
}

// ArchiveContent is the archive body served for a package added with AddPackage.
func ArchiveContent(fullName, version string) []byte {
	return []byte("PK-fake-archive:" + fullName + "-" + version)
}

// Fetches returns the "namespace-name" of every metadata request, in order.
func (s *Server) Fetches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.fetches...)
}

// FetchCount returns how many metadata requests were made for fullName.
func (s *Server) FetchCount(fullName string) int {
	n := 0
	for _, f := range s.Fetches() {
		if f == fullName {
			n++
		}
	}
	return n
}

// Uploads returns the recorded upload requests.
func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Upload(nil), s.uploads...)
}

func (s *Server) handlePackage(w http.ResponseWriter, r *http.Request) {
	ns, name := chi.URLParam(r, "namespace"), chi.URLParam(r, "name")
	key := ns + "/" + name

	s.mu.Lock()
	s.fetches = append(s.fetches, ns+"-"+name)
	body, ok := s.packages[key]
	status := s.status[key]
	s.mu.Unlock()

	if !ok {
		http.Error(w, `{"detail":"Not found."}`, http.StatusNotFound)
		return
	}
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data, ok := s.archives[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	_, _ = w.Write(data)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	up := Upload{Authorization: r.Header.Get("Authorization")}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, `{"detail":"bad multipart body"}`, http.StatusBadRequest)
		return
	}
	up.Metadata = r.FormValue("metadata")
	if f, hdr, err := r.FormFile("file"); err == nil {
		up.Filename = hdr.Filename
		up.Archive, _ = io.ReadAll(f)
		f.Close()
	}

	s.mu.Lock()
	s.uploads = append(s.uploads, up)
	token, status, body := s.Token, s.UploadStatus, s.UploadBody
	s.mu.Unlock()

	if token != "" && up.Authorization != "Bearer "+token {
		http.Error(w, `{"detail":"Invalid token."}`, http.StatusUnauthorized)
		return
	}
	if status != 0 {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
		return
	}

	var meta struct {
		AuthorName string `json:"author_name"`
	}
	_ = json.Unmarshal([]byte(up.Metadata), &meta)
	name := strings.TrimSuffix(up.Filename, ".zip")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"namespace": meta.AuthorName,
		"name":      name,
	})
}
