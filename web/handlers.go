// Package web exposes the atlas composition engine over HTTP.
//
// Requests are multipart uploads carrying sprite images, optional
// shadow images, an optional background and a JSON params field. The
// response body is the composed atlas; the diagnostic report travels
// out-of-band in the X-Atlas-Report header as base64-encoded JSON.
package web

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"net/http"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/ozx/atlasd/atlas"
)

const (
	// maxSpriteCount bounds how many sprite files one request may carry.
	maxSpriteCount = 300
	// maxUploadBytes bounds the total request size (200 MiB).
	maxUploadBytes = 200 << 20
	// multipartMemory is how much of the upload is kept in memory before
	// spilling to disk.
	multipartMemory = 32 << 20
)

// ReportHeader is the response header carrying the base64 JSON report.
const ReportHeader = "X-Atlas-Report"

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches the atlas endpoints to the router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/v1/atlas/preview", h.previewHandler).Methods("POST")
	r.HandleFunc("/v1/atlas/export", h.exportHandler).Methods("POST")
	r.HandleFunc("/v1/atlas/export.gif", h.exportGIFHandler).Methods("POST")
	r.HandleFunc("/healthz", h.healthHandler).Methods("GET")
}

func (h *Handler) previewHandler(w http.ResponseWriter, r *http.Request) {
	h.compose(w, r, true, false)
}

func (h *Handler) exportHandler(w http.ResponseWriter, r *http.Request) {
	h.compose(w, r, false, false)
}

func (h *Handler) exportGIFHandler(w http.ResponseWriter, r *http.Request) {
	h.compose(w, r, false, true)
}

func (h *Handler) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, `{"status":"ok"}`+"\n")
}

// compose is the shared body of the three POST endpoints. preview
// applies the previewMaxWidth cap; asGIF swaps the PNG encoding for a
// palette-quantized GIF.
func (h *Handler) compose(w http.ResponseWriter, r *http.Request, preview, asGIF bool) {
	in, params, err := parseRequest(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	canvas, report, err := atlas.Compose(in, params)
	if err != nil {
		glog.Errorf("composition failed: %v", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	img := canvas
	if preview {
		img = atlas.Preview(canvas, params.PreviewMaxWidth)
	}

	encodedReport, err := report.EncodeHeader()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set(ReportHeader, encodedReport)

	if asGIF {
		w.Header().Set("Content-Type", "image/gif")
		w.Header().Set("Content-Disposition", `attachment; filename=atlas.gif`)
		w.WriteHeader(http.StatusOK)
		encodeGIF(w, img)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if !preview {
		w.Header().Set("Content-Disposition", `attachment; filename=atlas.png`)
	}
	w.WriteHeader(http.StatusOK)
	png.Encode(w, img)
}

// parseRequest pulls the multipart payload apart into engine input.
// The params field is decoded and validated here so that no image work
// starts for a malformed request.
func parseRequest(w http.ResponseWriter, r *http.Request) (atlas.Input, atlas.Params, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return atlas.Input{}, atlas.Params{}, errors.Wrap(err, "parsing multipart upload")
	}

	params, err := atlas.ParseParams([]byte(r.FormValue("params")))
	if err != nil {
		return atlas.Input{}, atlas.Params{}, err
	}

	sprites, err := readFiles(r, "images")
	if err != nil {
		return atlas.Input{}, atlas.Params{}, err
	}
	if len(sprites) == 0 {
		return atlas.Input{}, atlas.Params{}, errors.New("no images provided")
	}
	if len(sprites) > maxSpriteCount {
		return atlas.Input{}, atlas.Params{}, errors.Errorf("too many images (max %d)", maxSpriteCount)
	}

	shadows, err := readFiles(r, "shadowImages")
	if err != nil {
		return atlas.Input{}, atlas.Params{}, err
	}

	in := atlas.Input{Sprites: sprites, Shadows: shadows}
	backgrounds, err := readFiles(r, "background")
	if err != nil {
		return atlas.Input{}, atlas.Params{}, err
	}
	if len(backgrounds) > 0 {
		in.Background = &backgrounds[0]
	}
	return in, params, nil
}

func readFiles(r *http.Request, field string) ([]atlas.NamedImage, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	var files []atlas.NamedImage
	for _, fh := range r.MultipartForm.File[field] {
		f, err := fh.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "opening upload %q", fh.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "reading upload %q", fh.Filename)
		}
		files = append(files, atlas.NamedImage{Name: fh.Filename, Data: data})
	}
	return files, nil
}

// statusFor maps the engine's error taxonomy onto HTTP status codes:
// anything the client can fix is a 400, the rest is a 500.
func statusFor(err error) int {
	switch errors.Cause(err).(type) {
	case *atlas.ValidationError, *atlas.ShadowResolutionError, *atlas.DecodeError:
		return http.StatusBadRequest
	}
	if errors.Cause(err) == atlas.ErrNoSprites {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// encodeGIF writes img as a GIF with a median-cut palette plus a
// transparency slot.
func encodeGIF(w io.Writer, img image.Image) {
	q := quantize.MedianCutQuantizer{AddTransparent: true}
	pal := q.Quantize(make(color.Palette, 0, 256), img)

	paletted := image.NewPaletted(img.Bounds(), pal)
	draw.Draw(paletted, img.Bounds(), img, img.Bounds().Min, draw.Over)

	if err := gif.Encode(w, paletted, nil); err != nil {
		glog.Errorf("encoding atlas gif: %v", err)
	}
}
