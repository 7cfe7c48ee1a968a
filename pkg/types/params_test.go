package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestParams_Encode(t *testing.T) {
	var params Params
	params = params.Add("action", "ping").Add("execid", "null").AddNull("user")

	assert.Equal(t, "action=ping&execid=null&user", params.Encode())
	assert.Equal(t, "[(action, ping), (execid, null), (user, null)]", params.String())
}

func TestParams_EscapesValues(t *testing.T) {
	params := Params{NewParam("executionIdList", "[1,2]"), NewParam("user", "a&b=c")}

	var args fasthttp.Args
	args.Parse(params.Encode())
	assert.Equal(t, "[1,2]", string(args.Peek("executionIdList")))
	assert.Equal(t, "a&b=c", string(args.Peek("user")))
}

func TestParams_DuplicateKeysKeepOrder(t *testing.T) {
	params := Params{NewParam("k", "1"), NewParam("other", "x"), NewParam("k", "2")}
	assert.Equal(t, "k=1&other=x&k=2", params.Encode())

	p, ok := params.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "1", p.Value)

	_, ok = params.Get("missing")
	assert.False(t, ok)
}

func TestOptionalParam(t *testing.T) {
	user := "bond"
	assert.Equal(t, NewParam("user", "bond"), OptionalParam("user", &user))
	assert.Equal(t, NullParam("user"), OptionalParam("user", nil))

	empty := ""
	p := OptionalParam("user", &empty)
	assert.False(t, p.Null)
	assert.Equal(t, "user=", Params{p}.Encode())
}
