package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// Tokens are lowercase hex; anything else never names a message and must
// not be echoed into the page.
var validID = regexp.MustCompile(`^[0-9a-f]{4,64}$`)

func (h *Handlers) IndexHandler(c *gin.Context) {
	html := `<!DOCTYPE html>
		<html lang="en">
		<head>
		<meta charset="UTF-8">
		<title>Ephemeral Message Relay</title>
		<style>
		  body { display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; background: #1e1e2e; color: #cdd6f4; font-family: sans-serif; }
		  .card { width: 28em; padding: 2em; background: #313244; border-radius: 8px; }
		  textarea, input { width: 100%; margin: 0.3em 0 1em; padding: 0.5em; border: none; border-radius: 4px; background: #45475a; color: inherit; }
		  button { padding: 0.6em 1.4em; border: none; border-radius: 4px; background: #89b4fa; color: #1e1e2e; font-weight: bold; cursor: pointer; }
		  #result { margin-top: 1em; word-break: break-all; }
		</style>
		</head>
		<body>
		<div class="card">
		  <h2>Send a message that disappears</h2>
		  <textarea id="text" rows="4" placeholder="Your message"></textarea>
		  <input id="ttl" type="number" placeholder="TTL in seconds (default 60)">
		  <input id="views" type="number" placeholder="Max views (default 1)">
		  <button onclick="send()">Create link</button>
		  <div id="result"></div>
		</div>
		<script>
		async function send() {
		  const body = { text: document.getElementById('text').value };
		  const ttl = parseInt(document.getElementById('ttl').value); if (ttl) body.ttl = ttl;
		  const views = parseInt(document.getElementById('views').value); if (views) body.max_views = views;
		  const resp = await fetch('/send', { method: 'POST', headers: {'Content-Type': 'application/json'}, body: JSON.stringify(body) });
		  const data = await resp.json();
		  document.getElementById('result').textContent = resp.ok ? location.origin + data.link : data.error;
		}
		</script>
		</body>
		</html>`

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// ViewHandler renders the countdown page. It only reads the deadline; the
// view itself is consumed when the reader clicks through to /recv/:id.
func (h *Handlers) ViewHandler(c *gin.Context) {
	id := c.Param("id")
	if !validID.MatchString(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found or expired"})
		return
	}

	remaining := 0
	if deadline, ok := h.relay.ExpiresAt(id); ok {
		remaining = int(time.Until(deadline).Seconds())
		if remaining < 0 {
			remaining = 0
		}
	}

	html := fmt.Sprintf(`<!DOCTYPE html>
		<html lang="en">
		<head>
		<meta charset="UTF-8">
		<title>Ephemeral message</title>
		<style>
		  body { display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; background: #1e1e2e; color: #cdd6f4; font-family: sans-serif; }
		  .card { width: 28em; padding: 2em; background: #313244; border-radius: 8px; text-align: center; }
		  button { padding: 0.6em 1.4em; border: none; border-radius: 4px; background: #f38ba8; color: #1e1e2e; font-weight: bold; cursor: pointer; }
		  #message { margin-top: 1em; white-space: pre-wrap; word-break: break-word; }
		  #countdown { font-size: 2em; margin: 0.5em; }
		</style>
		</head>
		<body>
		<div class="card">
		  <div id="countdown">%d</div>
		  <button onclick="reveal()">Reveal message</button>
		  <div id="message"></div>
		</div>
		<script>
		let remaining = %d;
		const el = document.getElementById('countdown');
		const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/recv/%s/watch');
		ws.onmessage = (ev) => {
		  const data = JSON.parse(ev.data);
		  remaining = data.remaining;
		  el.textContent = data.gone ? 'gone' : remaining;
		};
		async function reveal() {
		  const resp = await fetch('/recv/%s');
		  const data = await resp.json();
		  document.getElementById('message').textContent = resp.ok ? data.text : data.error;
		}
		</script>
		</body>
		</html>`, remaining, remaining, id, id)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
