package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/emptypb"
)

func TestCodecPlainStructs(t *testing.T) {
	c := Codec()
	assert.Equal(t, "json", c.Name())

	data, err := c.Marshal(&ActivateCellRequest{EmployeeID: "1", Date: "2024-03-20"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"employeeId":"1","date":"2024-03-20"}`, string(data))

	var entry AttendanceEntry
	require.NoError(t, c.Unmarshal([]byte(`{"employeeId":"1","status":"present","hasPassword":true}`), &entry))
	assert.Equal(t, AttendanceEntry{EmployeeID: "1", Status: "present", HasPassword: true}, entry)
}

func TestCodecEmptyBody(t *testing.T) {
	c := Codec()

	var req ListEmployeesRequest
	assert.NoError(t, c.Unmarshal(nil, &req))

	var empty emptypb.Empty
	assert.NoError(t, c.Unmarshal(nil, &empty))
}

func TestCodecProtoMessages(t *testing.T) {
	c := Codec()

	data, err := c.Marshal(&emptypb.Empty{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	var empty emptypb.Empty
	assert.NoError(t, c.Unmarshal(data, &empty))
	assert.Error(t, c.Unmarshal([]byte(`{"unknown":1}`), &empty))
}
