package videobridge

import "net/http"

// page hosts the YouTube iframe and forwards every websocket frame to it.
const page = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>eko video</title>
<style>html,body{margin:0;height:100%;background:#000}iframe{border:0;width:100%;height:100%}</style>
</head>
<body>
<iframe id="player" allow="autoplay; encrypted-media; fullscreen"
  src="https://www.youtube.com/embed/?enablejsapi=1&autoplay=1&rel=0&modestbranding=1&playsinline=1"></iframe>
<script>
const frame = document.getElementById("player");
function connect() {
  const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  ws.onmessage = (e) => frame.contentWindow.postMessage(e.data, "*");
  ws.onclose = () => setTimeout(connect, 1000);
}
connect();
</script>
</body>
</html>
`

func servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}
