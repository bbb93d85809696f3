package api

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"tareasapi/server"
	"tareasapi/task"
)

const contentTypeHTML = "text/html; charset=utf-8"

// home handles GET /: a static page pointing at the demo UI and the
// endpoints.
func (a *API) home(c *gin.Context) {
	c.Data(http.StatusOK, contentTypeHTML, []byte(homeHTML))
}

// demoUI handles GET /ui: a static page driving the API from the browser.
func (a *API) demoUI(c *gin.Context) {
	c.Data(http.StatusOK, contentTypeHTML, []byte(demoHTML))
}

// tasksPage handles GET /tareas: the protected greeting page with the
// user's task list.
func (a *API) tasksPage(c *gin.Context) {
	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	tasks, err := a.tasks.ListByUser(c.Request.Context(), u.ID)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", contentTypeHTML)
	if err := tasksTemplate.Execute(c.Writer, tasksPageData{
		Username: u.Username,
		Tasks:    tasks,
	}); err != nil {
		a.log.Error("Rendering tasks page failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

type tasksPageData struct {
	Username string
	Tasks    []task.Task
}

// tasksTemplate escapes the username and task titles; both are
// client-supplied strings.
var tasksTemplate = template.Must(template.New("tareas").Parse(`<!doctype html>
<html lang="es"><meta charset="utf-8"><title>Bienvenido</title>
<body style="font-family:system-ui; margin:2rem">
  <h1>¡Hola, {{.Username}}!</h1>
  <p>Accediste correctamente a <strong>/tareas</strong>.</p>
  {{if .Tasks}}<ul>
  {{range .Tasks}}<li>{{if .Done}}&#x2705;{{else}}&#x2B1C;{{end}} {{.Title}}</li>
  {{end}}</ul>{{else}}<p>No hay tareas todavía.</p>{{end}}
</body></html>
`))

const homeHTML = `<!doctype html>
<html lang="es"><meta charset="utf-8"><title>Tareas API</title>
<body style="font-family:system-ui; margin:2rem">
  <h1>Tareas API</h1>
  <p>Probá la UI: <a href="/ui">/ui</a></p>
  <p>Endpoints: <code>/registro</code>, <code>/login</code>, <code>/tareas</code> (HTML protegido)</p>
</body></html>
`

const demoHTML = `<!doctype html>
<html lang="es"><meta charset="utf-8"><title>Tareas API — UI mínima</title>
<body style="font-family:system-ui; margin:2rem">
  <h1>UI mínima</h1>
  <label>Usuario</label><input id="user" value="manu">
  <label>Contraseña</label><input id="pass" type="password" value="1234"><br><br>
  <button onclick="registrar()">Registrar</button>
  <button onclick="login()">Iniciar sesión</button>
  <button onclick="verTareas()">Abrir /tareas</button>
  <pre id="log">Listo.</pre>
  <div id="vista" style="margin-top:1rem"></div>
  <script>
    let TOKEN=null; const log=t=>document.getElementById('log').textContent=String(t);
    function v(id){return document.getElementById(id).value;}
    async function registrar(){
      const r=await fetch('/registro',{method:'POST',headers:{'Content-Type':'application/json'},
        body:JSON.stringify({username:v('user'),password:v('pass')})});
      log(await r.text());
    }
    async function login(){
      const r=await fetch('/login',{method:'POST',headers:{'Content-Type':'application/json'},
        body:JSON.stringify({username:v('user'),password:v('pass')})});
      const j=await r.json(); TOKEN=j.token; log(JSON.stringify(j,null,2));
    }
    async function verTareas(){
      if(!TOKEN){ log('Primero hacé login.'); return; }
      const r=await fetch('/tareas',{headers:{Authorization:'Bearer '+TOKEN}});
      if(!r.ok){ log('Error '+r.status); return; }
      const h=await r.text(); document.getElementById('vista').innerHTML=h; log('OK: /tareas renderizado.');
    }
  </script>
</body></html>
`
