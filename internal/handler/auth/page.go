package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const loginPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Roundtable</title>
</head>
<body>
<form id="login">
  <label for="password">Password</label>
  <input id="password" name="password" type="password" autofocus required>
  <button type="submit">Enter</button>
  <p id="error" hidden>Wrong password</p>
</form>
<script>
document.getElementById('login').addEventListener('submit', async (e) => {
  e.preventDefault();
  const res = await fetch('/api/auth', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({password: document.getElementById('password').value}),
  });
  if (res.ok) { window.location.href = '/'; return; }
  document.getElementById('error').hidden = false;
});
</script>
</body>
</html>
`

// Page 登录页
func (h *Handler) Page(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(loginPage))
}
