package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/bodul/crosswords/puzzle"
)

const maxUploadSize = 10 << 20 // 10 MB

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// errOutOfBounds is returned for a word ending outside the playing area.
var errOutOfBounds = errors.New("word lies outside the playing area")

// rateLimiter keeps one token bucket per client IP.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int

	stop chan struct{}
	done chan struct{}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newRateLimiter allows n events per interval per IP, in bursts of up to n.
func newRateLimiter(n int, interval time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(interval / time.Duration(n)),
		burst:    n,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go rl.cleanup(time.Minute)
	return rl
}

// cleanup drops visitors idle for five minutes, checking every period,
// until close is called.
func (rl *rateLimiter) cleanup(period time.Duration) {
	defer close(rl.done)
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
		}
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > 5*time.Minute {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// close stops the cleanup goroutine and waits for it to exit. It must be
// called at most once.
func (rl *rateLimiter) close() {
	close(rl.stop)
	<-rl.done
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	rl.mu.Unlock()

	return v.limiter.Allow()
}

// Server is the main HTTP server.
type Server struct {
	mux      *http.ServeMux
	store    *Store
	gemini   *GeminiClient
	sse      *Broadcaster
	uploadRL *rateLimiter
	placeRL  *rateLimiter

	maxExtent uint
	closeOnce sync.Once
}

// NewServer creates a configured HTTP server. gemini may be nil, in which
// case image import is disabled. Call Close to release its background
// goroutines.
func NewServer(store *Store, gemini *GeminiClient, cfg Config) *Server {
	if cfg.UploadPerMinute <= 0 {
		cfg.UploadPerMinute = defaultUploadPerMinute
	}
	if cfg.PlacePerSecond <= 0 {
		cfg.PlacePerSecond = defaultPlacePerSecond
	}
	if cfg.MaxExtent == 0 {
		cfg.MaxExtent = defaultMaxExtent
	}
	s := &Server{
		mux:       http.NewServeMux(),
		store:     store,
		gemini:    gemini,
		sse:       NewBroadcaster(),
		uploadRL:  newRateLimiter(cfg.UploadPerMinute, time.Minute),
		placeRL:   newRateLimiter(cfg.PlacePerSecond, time.Second),
		maxExtent: cfg.MaxExtent,
	}
	s.routes()
	return s
}

// Close stops the rate limiter cleanup goroutines. It is safe to call
// more than once.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		s.uploadRL.close()
		s.placeRL.close()
	})
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/puzzles", s.handleCreatePuzzle)
	s.mux.HandleFunc("POST /api/puzzles/import", s.handleImportPuzzle)
	s.mux.HandleFunc("GET /api/puzzles", s.handleListPuzzles)
	s.mux.HandleFunc("GET /api/puzzles/{id}", s.handleGetPuzzle)
	s.mux.HandleFunc("GET /api/puzzles/{id}/render", s.handleRenderPuzzle)
	s.mux.HandleFunc("POST /api/puzzles/{id}/words", s.handlePlaceWord)
	s.mux.HandleFunc("POST /api/puzzles/{id}/merge", s.handleMergePuzzle)
	s.mux.HandleFunc("POST /api/puzzles/{id}/join", s.handleJoinPuzzle)
	s.mux.HandleFunc("GET /api/puzzles/{id}/events", s.handlePuzzleEvents)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("Content-Security-Policy", "default-src 'none'")
	s.mux.ServeHTTP(w, r)
}

// --- Puzzle handlers ---

// POST /api/puzzles — build a puzzle from a first word and optional extras.
func (s *Server) handleCreatePuzzle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string     `json:"name"`
		Words []WordJSON `json:"words"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	words, err := toWords(req.Words)
	if err == nil {
		err = s.checkExtent(words...)
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, err := s.store.CreatePuzzle(sanitizeName(req.Name), words)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, sess.View())
}

// POST /api/puzzles/import — upload a photo, extract words with Gemini.
func (s *Server) handleImportPuzzle(w http.ResponseWriter, r *http.Request) {
	if !s.uploadRL.allow(clientIP(r)) {
		jsonError(w, "too many requests, try again later", http.StatusTooManyRequests)
		return
	}

	if s.gemini == nil {
		jsonError(w, "image import not configured", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, "image too large (max 10 MB)", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		jsonError(w, "field 'image' required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !allowedMIME[mimeType] {
		jsonError(w, "accepted formats: JPEG or PNG", http.StatusBadRequest)
		return
	}

	imageData, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, "could not read image", http.StatusInternalServerError)
		return
	}

	words, err := s.gemini.ExtractWords(r.Context(), imageData, mimeType)
	if err != nil {
		log.Printf("Gemini extract error: %v", err)
		jsonError(w, "could not read words from the image", http.StatusInternalServerError)
		return
	}
	if err := s.checkExtent(words...); err != nil {
		jsonError(w, "image grid: "+err.Error(), http.StatusBadRequest)
		return
	}

	sess, err := s.store.CreatePuzzle(sanitizeName(r.FormValue("name")), words)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dropped := len(words) - sess.Snapshot().Len(); dropped > 0 {
		log.Printf("puzzle %s: import dropped %d conflicting words", sess.ID, dropped)
	}

	writeJSON(w, http.StatusCreated, sess.View())
}

// GET /api/puzzles — list all puzzles.
func (s *Server) handleListPuzzles(w http.ResponseWriter, _ *http.Request) {
	sessions := s.store.ListPuzzles()
	views := make([]PuzzleView, len(sessions))
	for i, sess := range sessions {
		views[i] = sess.View()
	}
	writeJSON(w, http.StatusOK, views)
}

// GET /api/puzzles/{id} — get a single puzzle.
func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	sess := s.store.GetPuzzle(r.PathValue("id"))
	if sess == nil {
		jsonError(w, "puzzle not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

// GET /api/puzzles/{id}/render — plain-text grid.
func (s *Server) handleRenderPuzzle(w http.ResponseWriter, r *http.Request) {
	sess := s.store.GetPuzzle(r.PathValue("id"))
	if sess == nil {
		jsonError(w, "puzzle not found", http.StatusNotFound)
		return
	}
	grid, err := sess.Render()
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, puzzle.ErrTooLarge) {
			code = http.StatusRequestEntityTooLarge
		}
		jsonError(w, err.Error(), code)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, grid)
}

// POST /api/puzzles/{id}/words — place a word.
func (s *Server) handlePlaceWord(w http.ResponseWriter, r *http.Request) {
	if !s.placeRL.allow(clientIP(r)) {
		jsonError(w, "too many requests, try again later", http.StatusTooManyRequests)
		return
	}

	sess := s.store.GetPuzzle(r.PathValue("id"))
	if sess == nil {
		jsonError(w, "puzzle not found", http.StatusNotFound)
		return
	}

	var req WordJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}
	author := sanitizeName(req.Author)
	word, err := req.Word()
	if err == nil {
		err = s.checkExtent(word)
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !sess.Place(word, author) {
		log.Printf("puzzle %s: rejected %s", sess.ID, word)
		jsonError(w, "word conflicts with the words already placed", http.StatusConflict)
		return
	}

	placed := toWordJSON(word, author)
	s.sse.Publish(sess.ID, map[string]any{
		"type": "word_placed",
		"word": placed,
	})

	writeJSON(w, http.StatusCreated, placed)
}

// POST /api/puzzles/{id}/merge — fold another puzzle's words in.
func (s *Server) handleMergePuzzle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SourceID string `json:"source_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SourceID == "" {
		jsonError(w, "field 'source_id' required", http.StatusBadRequest)
		return
	}

	sess, accepted, err := s.store.Merge(r.PathValue("id"), req.SourceID)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrPuzzleNotFound) {
			code = http.StatusNotFound
		}
		jsonError(w, err.Error(), code)
		return
	}

	view := sess.View()
	s.sse.Publish(sess.ID, map[string]any{
		"type":     "puzzle_merged",
		"accepted": accepted,
		"puzzle":   view,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"accepted": accepted,
		"puzzle":   view,
	})
}

// POST /api/puzzles/{id}/join — join a puzzle with a pseudo.
func (s *Server) handleJoinPuzzle(w http.ResponseWriter, r *http.Request) {
	sess := s.store.GetPuzzle(r.PathValue("id"))
	if sess == nil {
		jsonError(w, "puzzle not found", http.StatusNotFound)
		return
	}

	var req struct {
		Pseudo string `json:"pseudo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Pseudo == "" {
		jsonError(w, "field 'pseudo' required", http.StatusBadRequest)
		return
	}

	pseudo := sanitizeName(req.Pseudo)
	if pseudo == "" {
		jsonError(w, "invalid pseudo", http.StatusBadRequest)
		return
	}

	player := sess.AddPlayer(pseudo)
	s.sse.Publish(sess.ID, map[string]string{
		"type":   "player_joined",
		"pseudo": player.Pseudo,
		"color":  player.Color,
	})

	writeJSON(w, http.StatusOK, player)
}

// GET /api/puzzles/{id}/events — SSE stream.
func (s *Server) handlePuzzleEvents(w http.ResponseWriter, r *http.Request) {
	sess := s.store.GetPuzzle(r.PathValue("id"))
	if sess == nil {
		jsonError(w, "puzzle not found", http.StatusNotFound)
		return
	}

	pseudo := sanitizeName(r.URL.Query().Get("pseudo"))
	initial := map[string]any{
		"type":    "puzzle_state",
		"puzzle":  sess.View(),
		"players": sess.Players(),
	}

	s.sse.ServeSSE(w, r, sess.ID, initial, func() {
		if pseudo == "" {
			return
		}
		sess.RemovePlayer(pseudo)
		s.sse.Publish(sess.ID, map[string]string{
			"type":   "player_left",
			"pseudo": pseudo,
		})
	})
}

// --- Helpers ---

// checkExtent rejects words with a cell at or past maxExtent on either
// axis. Start never exceeds End, so checking End is enough.
func (s *Server) checkExtent(words ...puzzle.Word) error {
	for _, w := range words {
		if end := w.End(); end.X >= s.maxExtent || end.Y >= s.maxExtent {
			return fmt.Errorf("%w: %s must end before (%d,%d)", errOutOfBounds, w, s.maxExtent, s.maxExtent)
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func sanitizeName(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > 20 {
		s = string([]rune(s)[:20])
	}
	return s
}
