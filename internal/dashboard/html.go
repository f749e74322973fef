package dashboard

const loginHTML = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<title>ESTRA - Acceso</title>
<style>
body{font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif;background:#0f172a;color:#e2e8f0;display:flex;align-items:center;justify-content:center;min-height:100vh}
form{background:#1e293b;border:1px solid #334155;border-radius:8px;padding:24px;width:280px}
h1{font-size:16px;margin:0 0 14px}
input{width:100%;padding:8px;border-radius:5px;border:1px solid #334155;background:#0f172a;color:#e2e8f0;box-sizing:border-box}
button{width:100%;margin-top:10px;padding:8px;border:none;border-radius:5px;background:#3b82f6;color:white;font-weight:600;cursor:pointer}
</style>
</head>
<body>
<form method="POST" action="/dashboard">
<h1>ESTRA - Panel Energético</h1>
<input type="password" name="password" placeholder="Contraseña" autofocus>
<button type="submit">Entrar</button>
</form>
</body>
</html>`

const dashboardHTML = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>ESTRA - Análisis Energético</title>
<style>
:root{--bg:#0f172a;--surface:#1e293b;--border:#334155;--text:#e2e8f0;--text-dim:#94a3b8;--text-muted:#64748b;--accent:#3b82f6;--green:#22c55e;--yellow:#eab308;--red:#ef4444}
*{margin:0;padding:0;box-sizing:border-box}
body{font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif;background:var(--bg);color:var(--text);min-height:100vh}
.hdr{background:var(--surface);border-bottom:1px solid var(--border);padding:10px 20px;display:flex;align-items:center;gap:10px;position:sticky;top:0;z-index:100}
.hdr h1{font-size:15px;font-weight:700;color:#f8fafc;flex:1}
.hdr .dot{width:8px;height:8px;border-radius:50%;background:var(--green);animation:pulse 2s infinite}
@keyframes pulse{0%,100%{opacity:1}50%{opacity:.4}}
.wrap{display:grid;grid-template-columns:2fr 1fr;gap:14px;padding:16px 20px;max-width:1400px;margin:0 auto}
.card{background:var(--surface);border:1px solid var(--border);border-radius:8px;padding:14px;margin-bottom:12px}
.card h3{font-size:13px;font-weight:600;margin-bottom:10px;color:var(--text-dim)}
.controls{display:flex;gap:8px;margin-bottom:10px;flex-wrap:wrap}
select{background:#0f172a;color:var(--text);border:1px solid var(--border);border-radius:5px;padding:6px 8px;font-size:12px}
.stats{display:grid;grid-template-columns:repeat(auto-fit,minmax(120px,1fr));gap:10px;margin-bottom:12px}
.sc{background:var(--surface);border:1px solid var(--border);border-radius:8px;padding:12px}
.sc .lb{font-size:10px;color:var(--text-muted);text-transform:uppercase;letter-spacing:.5px}
.sc .vl{font-size:20px;font-weight:700;color:#f8fafc}
.sc .dl{font-size:10px;color:var(--text-muted);margin-top:2px}
iframe{width:100%;height:440px;border:0;border-radius:8px;background:#fff}
.chat{display:flex;flex-direction:column;height:560px}
.msgs{flex:1;overflow-y:auto;display:flex;flex-direction:column;gap:8px;padding:4px}
.msg{padding:8px 12px;border-radius:8px;font-size:12px;max-width:90%;white-space:pre-wrap}
.msg.user{background:#1e3a5f;align-self:flex-end}
.msg.assistant{background:#334155;align-self:flex-start}
.sugg{display:flex;flex-direction:column;gap:6px;margin:8px 0}
.btn{padding:6px 12px;border-radius:5px;font-size:11px;font-weight:600;border:none;cursor:pointer;background:#475569;color:white;text-align:left}
.btn:hover{background:#64748b}
.btn-p{background:var(--accent)}.btn-p:hover{background:#2563eb}
.inp{display:flex;gap:6px;margin-top:8px}
.inp input{flex:1;background:#0f172a;color:var(--text);border:1px solid var(--border);border-radius:5px;padding:8px;font-size:12px}
.footer{text-align:center;color:var(--text-muted);font-size:12px;padding:14px}
table{width:100%;border-collapse:collapse}
th{text-align:left;padding:6px 8px;font-size:10px;color:var(--text-muted);text-transform:uppercase;border-bottom:1px solid var(--border)}
td{padding:6px 8px;border-bottom:1px solid var(--border);font-size:12px}
</style>
</head>
<body>
<div class="hdr"><div class="dot"></div><h1>ESTRA - Plataforma inteligente de Analítica de eficiencia energética y productiva</h1><button class="btn" onclick="refreshEnergy()">Actualizar Datos</button></div>
<div class="wrap">
<div>
  <div class="card">
    <div class="controls">
      <select id="machine" onchange="reload()"></select>
      <select id="period" onchange="reload()"></select>
    </div>
    <iframe id="chart" src="/dashboard/chart"></iframe>
  </div>
  <h3 style="margin:6px 0;color:var(--text-dim);font-size:13px">Métricas de Control</h3>
  <div class="stats" id="control"></div>
  <div class="card">
    <h3>Métricas de Diagnóstico</h3>
    <div class="stats" id="diag-tiles"></div>
    <table id="fleet"><thead><tr><th>Centro de costos</th><th>Teórico</th><th>Real</th><th>Eficiencia</th></tr></thead><tbody></tbody></table>
  </div>
</div>
<div>
  <div class="card chat">
    <h3>S.O.S EnergIA</h3>
    <div class="msgs" id="msgs"></div>
    <div class="sugg" id="sugg"></div>
    <div class="inp">
      <input id="prompt" placeholder="Escribe tu consulta aquí..." onkeydown="if(event.key==='Enter')send()">
      <button class="btn btn-p" onclick="send()">Enviar</button>
    </div>
    <button class="btn" style="margin-top:6px" onclick="clearChat()">Limpiar Chat</button>
  </div>
</div>
</div>
<div class="footer">ESTRA - Sistema de Análisis de Centros de Costos de Energía | Powered by SUME--SOSPOL</div>
<script>
let sessionId = localStorage.getItem('estra_session') || '';

async function jget(url){const r=await fetch(url);return r.json()}
async function jpost(url,body){const r=await fetch(url,{method:'POST',headers:{'Content-Type':'application/json'},body:JSON.stringify(body)});return r.json()}

function sel(){return{machine:document.getElementById('machine').value,period:document.getElementById('period').value}}

async function init(){
  const d=await jget('/api/machines');
  const ms=document.getElementById('machine'), ps=document.getElementById('period');
  d.machines.forEach(m=>{const o=document.createElement('option');o.value=m.id;o.textContent=m.id;ms.appendChild(o)});
  d.periods.forEach(p=>{const o=document.createElement('option');o.value=p;o.textContent=p;if(p==='Semana')o.selected=true;ps.appendChild(o)});
  await reload();
  await loadHistory();
}

async function reload(){
  const {machine,period}=sel();
  document.getElementById('chart').src='/dashboard/chart?machine='+encodeURIComponent(machine)+'&period='+encodeURIComponent(period);
  const cm=await jget('/api/control-metrics');
  renderTiles('control',cm.tiles);
  const dg=await jget('/api/diagnostics?period='+encodeURIComponent(period));
  renderTiles('diag-tiles',dg.tiles);
  const tb=document.querySelector('#fleet tbody');tb.innerHTML='';
  dg.fleet.forEach(f=>{const tr=document.createElement('tr');
    tr.innerHTML='<td>'+f.machine+'</td><td>'+f.mean_theoretical.toFixed(1)+'</td><td>'+f.mean_actual.toFixed(1)+'</td><td>'+f.efficiency_pct.toFixed(1)+'%</td>';
    tb.appendChild(tr)});
}

function renderTiles(id,tiles){
  const el=document.getElementById(id);el.innerHTML='';
  tiles.forEach(t=>{const d=document.createElement('div');d.className='sc';
    d.innerHTML='<div class="lb">'+t.label+'</div><div class="vl">'+t.value+'</div>'+(t.delta?'<div class="dl">'+t.delta+'</div>':'');
    el.appendChild(d)});
}

function renderHistory(h,showSugg){
  const el=document.getElementById('msgs');el.innerHTML='';
  h.forEach(m=>{const d=document.createElement('div');d.className='msg '+m.role;d.textContent=m.content;el.appendChild(d)});
  el.scrollTop=el.scrollHeight;
  document.getElementById('sugg').style.display=showSugg?'flex':'none';
}

async function loadHistory(){
  const d=await jget('/api/chat/history?session_id='+encodeURIComponent(sessionId));
  sessionId=d.session_id;localStorage.setItem('estra_session',sessionId);
  renderHistory(d.history,d.show_suggestions);
  const q=await jget('/api/questions');
  const sg=document.getElementById('sugg');sg.innerHTML='';
  q.questions.forEach(question=>{const b=document.createElement('button');b.className='btn';b.textContent=question;
    b.onclick=()=>ask(question);sg.appendChild(b)});
}

async function ask(question){
  const s=await jpost('/api/chat/select',{session_id:sessionId,question:question});
  sessionId=s.session_id;localStorage.setItem('estra_session',sessionId);
  const {machine,period}=sel();
  const d=await jpost('/api/chat',{session_id:sessionId,machine:machine,period:period});
  if(d.error){alert(d.error.message);return}
  renderHistory(d.history,d.show_suggestions);
}

async function send(){
  const inp=document.getElementById('prompt');
  const prompt=inp.value.trim();
  if(!prompt)return;
  inp.value='';
  const {machine,period}=sel();
  const d=await jpost('/api/chat',{session_id:sessionId,machine:machine,period:period,prompt:prompt});
  if(d.error){alert(d.error.message);return}
  sessionId=d.session_id;localStorage.setItem('estra_session',sessionId);
  renderHistory(d.history,d.show_suggestions);
}

async function clearChat(){
  const d=await jpost('/api/chat/clear',{session_id:sessionId});
  renderHistory(d.history,true);
}

async function refreshEnergy(){
  await jget('/api/energy?refresh=1');
}

init();
</script>
</body>
</html>`
