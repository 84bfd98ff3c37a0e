package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mauricejumelet/advisor-cli/internal/charts"
)

type ServeCmd struct {
	Addr string `help:"Listen address" default:":8080"`
}

func (c *ServeCmd) Run(app *App) error {
	srv := &webServer{app: app}

	router := mux.NewRouter()
	router.HandleFunc("/", srv.handleIndex).Methods("GET")
	router.HandleFunc("/api/upload", srv.handleUpload).Methods("POST")
	router.HandleFunc("/api/chat", srv.handleChat).Methods("POST")

	log.Printf("advisor: listening on %s", c.Addr)
	return http.ListenAndServe(c.Addr, router)
}

type webServer struct {
	app *App
}

type chatPayload struct {
	Message string `json:"message"`
}

type chatReply struct {
	Reply string `json:"reply"`
	Chart string `json:"chart,omitempty"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// handleChat resolves the message to a date range and answers with a
// chart of the scores; when no range is recognized the reply is the
// model's conversational answer instead.
func (s *webServer) handleChat(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Println("serve: chat: error reading body:", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	var payload chatPayload
	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	reply := s.answer(payload.Message)
	writeJSON(w, reply)
}

// answer implements one chat turn against the loaded data.
func (s *webServer) answer(message string) chatReply {
	rng, ok := s.app.Resolver().Parse(message)
	if !ok {
		return chatReply{Reply: s.app.Ollama.Chat(message)}
	}

	scores := s.app.Store.Scores(rng.Start, rng.End)
	reply := chatReply{
		Start: rng.Start.Format(isoDate),
		End:   rng.End.Format(isoDate),
	}
	if len(scores) == 0 {
		reply.Reply = fmt.Sprintf("No scores between %s and %s. Upload a CSV first.", reply.Start, reply.End)
		return reply
	}

	reply.Reply = fmt.Sprintf("Scores from %s to %s:", reply.Start, reply.End)
	reply.Chart = charts.Build(scores)
	return reply
}

func (s *webServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		log.Println("serve: upload: error reading file:", err)
		http.Error(w, "upload failed", http.StatusInternalServerError)
		return
	}

	if err := s.app.Store.LoadCSV(raw); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]int{"rows": s.app.Store.Rows()})
}

func (s *webServer) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("serve: error encoding response:", err)
	}
}

const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Food Score Advisor</title>
<style>
body { font-family: Inter, sans-serif; background: #0c2144; color: #fff; max-width: 720px; margin: 2em auto; }
input, button { font: inherit; padding: .4em; }
#log > div { margin: .8em 0; }
.user { color: #00c2ff; }
</style>
</head>
<body>
<h1>Food Score Advisor</h1>
<form id="upload">
  <input type="file" name="file" accept=".csv" required>
  <button type="submit">Upload CSV</button>
  <span id="upload-status"></span>
</form>
<div id="log"></div>
<form id="chat">
  <input id="message" placeholder="e.g. show me last week" size="50" required>
  <button type="submit">Ask</button>
</form>
<script>
document.getElementById('upload').addEventListener('submit', async (e) => {
  e.preventDefault();
  const res = await fetch('/api/upload', {method: 'POST', body: new FormData(e.target)});
  const status = document.getElementById('upload-status');
  if (res.ok) {
    const data = await res.json();
    status.textContent = 'Loaded ' + data.rows + ' rows.';
  } else {
    status.textContent = await res.text();
  }
});
document.getElementById('chat').addEventListener('submit', async (e) => {
  e.preventDefault();
  const input = document.getElementById('message');
  const log = document.getElementById('log');
  const q = document.createElement('div');
  q.className = 'user';
  q.textContent = input.value;
  log.appendChild(q);
  const res = await fetch('/api/chat', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({message: input.value}),
  });
  input.value = '';
  const a = document.createElement('div');
  if (res.ok) {
    const data = await res.json();
    a.textContent = data.reply;
    if (data.chart) {
      const chart = document.createElement('div');
      chart.innerHTML = data.chart;
      a.appendChild(chart);
      for (const old of chart.querySelectorAll('script')) {
        const s = document.createElement('script');
        if (old.src) { s.src = old.src; } else { s.textContent = old.textContent; }
        old.replaceWith(s);
      }
    }
  } else {
    a.textContent = 'Something went wrong.';
  }
  log.appendChild(a);
});
</script>
</body>
</html>
`
