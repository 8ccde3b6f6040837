package web

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Mandelbrot</title>
<style>
body { background: #202020; color: #e0e0e0; font-family: monospace; margin: 0; padding: 8px; }
#frame { display: block; cursor: crosshair; image-rendering: pixelated; }
</style>
</head>
<body>
<img id="frame" alt="mandelbrot">
<p>click: zoom in &middot; right click / z: zoom out &middot; r: reset &middot; + / -: iterations</p>
<p id="status"></p>
<script>
const frame = document.getElementById("frame");
const status = document.getElementById("status");
const socket = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
socket.binaryType = "blob";

function send(command) {
  if (socket.readyState === WebSocket.OPEN) {
    socket.send(JSON.stringify(command));
  }
}

socket.onmessage = (event) => {
  if (typeof event.data === "string") {
    status.textContent = JSON.parse(event.data).error || "";
    return;
  }
  status.textContent = "";
  const url = URL.createObjectURL(event.data);
  frame.onload = () => URL.revokeObjectURL(url);
  frame.src = url;
};
socket.onclose = () => { status.textContent = "disconnected"; };

frame.onclick = (event) => send({command: "zoom-in", column: event.offsetX, row: event.offsetY});
frame.oncontextmenu = (event) => { event.preventDefault(); send({command: "zoom-out"}); };
document.onkeydown = (event) => {
  switch (event.key) {
  case "r": send({command: "reset"}); break;
  case "z": send({command: "zoom-out"}); break;
  case "+": case "=": send({command: "increase-budget"}); break;
  case "-": send({command: "decrease-budget"}); break;
  }
};
</script>
</body>
</html>
`
