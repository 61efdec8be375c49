package models_test

import (
	"encoding/json"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wheelibin/lumos/internal/models"
)

func Test_LightProperties_Set(t *testing.T) {

	t.Run("should set and get each field", func(t *testing.T) {
		p := models.LightProperties{}

		require.NoError(t, p.Set(models.FieldOn, true))
		require.NoError(t, p.Set(models.FieldBrightness, 100))
		require.NoError(t, p.Set(models.FieldColourHex, "f1e0b5"))

		assert.Equal(t, true, p.Get(models.FieldOn))
		assert.Equal(t, 100, p.Get(models.FieldBrightness))
		assert.Equal(t, "f1e0b5", p.Get(models.FieldColourHex))
		assert.Nil(t, p.Get(models.FieldHue))
	})

	t.Run("wrong value type: should return an error and leave the field alone", func(t *testing.T) {
		p := models.LightProperties{Brightness: lo.ToPtr(5)}

		err := p.Set(models.FieldBrightness, "bright")

		assert.Error(t, err)
		assert.Equal(t, 5, *p.Brightness)
	})

	t.Run("nil value: should clear the field", func(t *testing.T) {
		p := models.LightProperties{Hue: lo.ToPtr(5)}

		require.NoError(t, p.Set(models.FieldHue, nil))

		assert.Nil(t, p.Hue)
		assert.True(t, p.IsEmpty())
	})
}

func Test_LightProperties_Clone(t *testing.T) {

	t.Run("should not share pointers", func(t *testing.T) {
		p := models.LightProperties{Brightness: lo.ToPtr(10), On: lo.ToPtr(true)}

		c := p.Clone()
		*c.Brightness = 20

		assert.Equal(t, 10, *p.Brightness)
		assert.Equal(t, true, *c.On)
	})
}

func Test_ActiveColourModes(t *testing.T) {
	p := models.LightProperties{Hue: lo.ToPtr(1), ColourTemperature: lo.ToPtr(250), Brightness: lo.ToPtr(3)}

	assert.Equal(t, []models.ColourMode{models.ColourModeHS, models.ColourModeTemperature}, p.ActiveColourModes())
}

func Test_Field_ColourMode(t *testing.T) {

	tests := []struct {
		field    models.Field
		expected models.ColourMode
	}{
		{models.FieldOn, models.ColourModeNone},
		{models.FieldBrightness, models.ColourModeNone},
		{models.FieldTransitionTime, models.ColourModeNone},
		{models.FieldColourHex, models.ColourModeHex},
		{models.FieldHue, models.ColourModeHS},
		{models.FieldSaturation, models.ColourModeHS},
		{models.FieldColourX, models.ColourModeXY},
		{models.FieldColourY, models.ColourModeXY},
		{models.FieldColourTemperature, models.ColourModeTemperature},
	}

	for _, tt := range tests {
		t.Run(tt.field.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.field.ColourMode())
		})
	}
}

func Test_LightRequest(t *testing.T) {

	t.Run("should only include set attributes, with on as a number", func(t *testing.T) {
		body, err := models.LightRequest(models.LightProperties{On: lo.ToPtr(true), Brightness: lo.ToPtr(100)})

		require.NoError(t, err)
		assert.JSONEq(t, `{"3311":[{"5850":1,"5851":100}]}`, string(body))
	})

	t.Run("empty properties: should send an empty light", func(t *testing.T) {
		body, err := models.LightRequest(models.LightProperties{})

		require.NoError(t, err)
		assert.JSONEq(t, `{"3311":[{}]}`, string(body))
	})
}

func Test_DecodeLightPayload(t *testing.T) {

	t.Run("should record which attributes were present", func(t *testing.T) {
		patch, err := models.DecodeLightPayload([]byte(`{"9003":65537,"3311":[{"5850":0,"5707":null,"5709":30000}]}`))

		require.NoError(t, err)
		assert.True(t, patch.Has(models.FieldOn))
		assert.True(t, patch.Has(models.FieldHue))
		assert.True(t, patch.Has(models.FieldColourX))
		assert.False(t, patch.Has(models.FieldBrightness))

		assert.Equal(t, false, *patch.Properties.On)
		assert.Nil(t, patch.Properties.Hue)
		assert.Equal(t, 30000, *patch.Properties.ColourX)
	})

	t.Run("no light list: should return an error", func(t *testing.T) {
		_, err := models.DecodeLightPayload([]byte(`{"9003":65537}`))
		assert.ErrorIs(t, err, models.ErrNoLightList)

		_, err = models.DecodeLightPayload([]byte(`{"3311":[]}`))
		assert.ErrorIs(t, err, models.ErrNoLightList)
	})

	t.Run("malformed json: should return an error", func(t *testing.T) {
		_, err := models.DecodeLightPayload([]byte(`{"3311":[{"5851":"bright"}]}`))
		assert.Error(t, err)

		_, err = models.DecodeLightPayload([]byte(`not json`))
		assert.Error(t, err)
	})
}

func Test_DecodeDevice(t *testing.T) {

	t.Run("light: should decode name, type and light state", func(t *testing.T) {
		d, err := models.DecodeDevice([]byte(`{"9001":"Desk","9002":1600000000,"9003":65540,"5750":2,"3311":[{"5850":1,"5851":200}]}`))

		require.NoError(t, err)
		assert.Equal(t, 65540, d.InstanceID)
		assert.Equal(t, "Desk", d.Name)
		assert.Equal(t, models.DeviceTypeLight, d.Type)
		assert.Equal(t, int64(1600000000), d.CreationDate.Unix())
		require.NotNil(t, d.Light)
		assert.Equal(t, true, *d.Light.On)
		assert.Equal(t, 200, *d.Light.Brightness)
	})

	t.Run("remote: should have no light state", func(t *testing.T) {
		d, err := models.DecodeDevice([]byte(`{"9001":"Remote","9003":65536,"5750":0}`))

		require.NoError(t, err)
		assert.Equal(t, models.DeviceTypeRemote, d.Type)
		assert.Nil(t, d.Light)
	})
}

func Test_LightProperties_JSON(t *testing.T) {
	in := models.LightProperties{On: lo.ToPtr(false), ColourHex: lo.ToPtr("efd275"), TransitionTime: lo.ToPtr(10)}

	b, err := json.Marshal(in)
	require.NoError(t, err)

	out := models.LightProperties{}
	require.NoError(t, json.Unmarshal(b, &out))

	assert.Equal(t, in, out)
}
