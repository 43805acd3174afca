package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arisha-glich/class-gecko-backend/apps/api/di"
	. "github.com/arisha-glich/class-gecko-backend/apps/api/echo"
	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/term"
	"github.com/arisha-glich/class-gecko-backend/core/user"
	"github.com/arisha-glich/class-gecko-backend/services/logger"
	"github.com/arisha-glich/class-gecko-backend/tests"
)

var (
	errUnauthorized = httpErr{Message: "Unauthorized"}
	errForbidden    = httpErr{Message: "Forbidden"}
)

type testApp struct {
	Server
	db   *gorm.DB
	conf *core.Config
}

func setup(t *testing.T) *testApp {
	// set up DB & services
	db := testutil.PrepareDB(t)
	svcs := di.NewServices(db, testutil.SQLx(t, db))

	conf := *core.Conf
	conf.TestMode = true
	zl := zap.NewNop()
	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator)
	term.InitValidators(validate, translator)

	// set up server
	srv := NewServer(
		&Options{
			Conf:           &conf,
			Logger:         logsvc.NewRollbarLogger(zl, &conf),
			Zap:            zl,
			Validate:       validate,
			Translator:     translator,
			DisableReqLogs: true,
			Services:       svcs,
		},
	)
	return &testApp{Server: srv, db: db, conf: &conf}
}

// signIn creates a user of the given role & returns its session token.
func (app *testApp) signIn(t *testing.T, name, email, role string) (user.User, string) {
	usr := testutil.CreateUser(t, app.db, name, email, role)
	return usr, testutil.CreateSession(t, app.db, usr)
}

type httpErr struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

// newAuthRequest sends token in the session cookie.
func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: core.Conf.Session.CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runTests(t *testing.T, app *testApp, tests []httpTest) {
	for _, tt := range tests {
		if tt.method == "" {
			tt.method = http.MethodGet
		}
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

type response struct {
	Message string          `json:"message"`
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// do sends a request & decodes the "data" of the envelope into dest (if not nil).
func (app *testApp) do(t *testing.T, method, path, token string, body interface{}, wantCode int, dest interface{}) response {
	t.Helper()
	var data []byte
	if body != nil {
		data = marchallObj(t, body)
	}
	req, rec := newAuthRequest(method, path, token, data)
	app.ServeHTTP(rec, req)
	require.Equal(t, wantCode, rec.Code, rec.Body.String())

	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	if dest != nil {
		require.NoError(t, json.Unmarshal(resp.Data, dest))
	}
	return resp
}

type obj = map[string]interface{}
