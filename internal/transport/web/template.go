package web

import "html/template"

type dashboardView struct {
	Title          string
	StatusLabel    string
	DefaultTickers string
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: sans-serif; margin: 2rem auto; max-width: 960px; }
  .status { background: #e8f0fe; border-left: 4px solid #4285f4; padding: 0.6rem 1rem; margin-bottom: 1rem; }
  table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
  th, td { border: 1px solid #ddd; padding: 0.4rem 0.7rem; text-align: left; }
  th { background: #cfe2f3; }
  .controls { margin: 1rem 0; }
  .controls input[type=text] { width: 24rem; }
  .downloads { margin-top: 1rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="status">Market Status: <span id="status">{{.StatusLabel}}</span></div>

<div class="controls">
  <label><input type="radio" name="mode" value="market" checked> market</label>
  <label><input type="radio" name="mode" value="pre_market"> pre_market</label>
</div>

<div class="controls">
  <label for="tickers">Enter additional tickers (comma-separated)</label><br>
  <input type="text" id="tickers" placeholder="e.g. IBM, ORCL">
</div>

<div>Current Ticker List: <span id="tickerList">{{.DefaultTickers}}</span></div>

<div class="controls">
  <button id="refresh">Refresh Data</button>
</div>

<div id="result"></div>

<div class="downloads" id="downloads" hidden>
  <a id="csvLink" href="#">Download data as CSV</a> |
  <a id="xlsxLink" href="#">Download data as XLSX</a>
</div>

<script>
function query() {
  const mode = document.querySelector('input[name=mode]:checked').value;
  const tickers = document.getElementById('tickers').value;
  return 'mode=' + encodeURIComponent(mode) + '&tickers=' + encodeURIComponent(tickers);
}

document.getElementById('refresh').addEventListener('click', async () => {
  const resp = await fetch('/api/quotes?' + query());
  if (!resp.ok) { return; }
  const data = await resp.json();

  document.getElementById('status').textContent = data.market_status;
  document.getElementById('tickerList').textContent = data.tickers.join(', ');

  const table = document.createElement('table');
  const head = table.insertRow();
  for (const col of data.columns) {
    const th = document.createElement('th');
    th.textContent = col;
    head.appendChild(th);
  }
  for (const row of data.rows) {
    const tr = table.insertRow();
    for (const value of row) {
      tr.insertCell().textContent = value;
    }
  }

  const result = document.getElementById('result');
  result.replaceChildren(table);

  document.getElementById('csvLink').href = '/api/export?format=csv&' + query();
  document.getElementById('xlsxLink').href = '/api/export?format=xlsx&' + query();
  document.getElementById('downloads').hidden = false;
});
</script>
</body>
</html>
`
