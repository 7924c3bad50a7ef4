package web

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/ozx/atlasd/atlas"
	"github.com/ozx/atlasd/ttesting"
)

func newRouter() *mux.Router {
	r := mux.NewRouter()
	NewHandler().RegisterRoutes(r)
	return r
}

type upload struct {
	field, name string
	data        []byte
}

func multipartRequest(t *testing.T, target, params string, files []upload) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if err := w.WriteField("params", params); err != nil {
		t.Fatalf("writing params field: %v", err)
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.name)
		if err != nil {
			t.Fatalf("creating form file %s: %v", f.name, err)
		}
		fw.Write(f.data)
	}
	w.Close()

	req := httptest.NewRequest("POST", target, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func spritePNG(t *testing.T, size int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	return buf.Bytes()
}

func TestPreviewEndpoint(t *testing.T) {
	req := multipartRequest(t, "/v1/atlas/preview", `{"width":2,"tileSize":52}`, []upload{
		{"images", "red.png", spritePNG(t, 52, color.NRGBA{R: 255, A: 255})},
	})
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)
	ttesting.AssertEqualString(t, "content type", rec.Header().Get("Content-Type"), "image/png")

	report, err := atlas.DecodeReportHeader(rec.Header().Get(ReportHeader))
	if err != nil {
		t.Fatalf("decoding report header: %v", err)
	}
	ttesting.AssertEqualInt(t, "clean report", len(report.Ignored), 0)

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decoding response png: %v", err)
	}
	ttesting.AssertEqualInt(t, "canvas width", img.Bounds().Dx(), 104)
	ttesting.AssertEqualInt(t, "canvas height", img.Bounds().Dy(), 52)
}

func TestExportSkipsPreviewCap(t *testing.T) {
	// previewMaxWidth far below the canvas width must not shrink an
	// export
	req := multipartRequest(t, "/v1/atlas/export", `{"width":2,"tileSize":52,"previewMaxWidth":10}`, []upload{
		{"images", "a.png", spritePNG(t, 52, color.NRGBA{R: 255, A: 255})},
		{"images", "b.png", spritePNG(t, 52, color.NRGBA{G: 255, A: 255})},
	})
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)
	ttesting.AssertEqualString(t, "attachment",
		rec.Header().Get("Content-Disposition"), `attachment; filename=atlas.png`)

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decoding response png: %v", err)
	}
	ttesting.AssertEqualInt(t, "full width", img.Bounds().Dx(), 104)
}

func TestPreviewAppliesCap(t *testing.T) {
	req := multipartRequest(t, "/v1/atlas/preview", `{"width":2,"tileSize":52,"previewMaxWidth":52}`, []upload{
		{"images", "a.png", spritePNG(t, 52, color.NRGBA{R: 255, A: 255})},
		{"images", "b.png", spritePNG(t, 52, color.NRGBA{G: 255, A: 255})},
	})
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decoding response png: %v", err)
	}
	ttesting.AssertEqualInt(t, "capped width", img.Bounds().Dx(), 52)
}

func TestGIFExport(t *testing.T) {
	req := multipartRequest(t, "/v1/atlas/export.gif", `{"width":1,"tileSize":8}`, []upload{
		{"images", "a.png", spritePNG(t, 8, color.NRGBA{R: 255, A: 255})},
	})
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)
	ttesting.AssertEqualString(t, "content type", rec.Header().Get("Content-Type"), "image/gif")
}

func TestRejectsInvalidParams(t *testing.T) {
	req := multipartRequest(t, "/v1/atlas/preview", `{"width":0}`, []upload{
		{"images", "a.png", spritePNG(t, 8, color.NRGBA{R: 255, A: 255})},
	})
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusBadRequest)
}

func TestRejectsTooManyImages(t *testing.T) {
	data := spritePNG(t, 1, color.NRGBA{R: 255, A: 255})
	files := make([]upload, maxSpriteCount+1)
	for i := range files {
		files[i] = upload{"images", "s.png", data}
	}
	req := multipartRequest(t, "/v1/atlas/preview", `{}`, files)
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusBadRequest)
	if !strings.Contains(rec.Body.String(), "too many images") {
		t.Errorf("body %q; want a too-many-images message", rec.Body.String())
	}
}

func TestRejectsEmptyUpload(t *testing.T) {
	req := multipartRequest(t, "/v1/atlas/preview", `{}`, nil)
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusBadRequest)
}

func TestFailPolicyIsBadRequest(t *testing.T) {
	req := multipartRequest(t, "/v1/atlas/preview",
		`{"useShadowImages":true,"missingShadowPolicy":"fail"}`, []upload{
			{"images", "lonely.png", spritePNG(t, 8, color.NRGBA{R: 255, A: 255})},
		})
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusBadRequest)
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)
	ttesting.AssertEqualString(t, "body", rec.Body.String(), `{"status":"ok"}`+"\n")
}
