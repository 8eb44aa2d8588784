package services

import (
	"testing"

	"travomine/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectHotelRateCardSingleMatch(t *testing.T) {
	cards := []models.HotelRateCard{
		{HotelID: 7, RoomType: "Deluxe", Season: "peak", Rate: 185.50},
	}

	rate, err := SelectHotelRateCard(cards, 7, "Deluxe", "peak")
	require.NoError(t, err)
	assert.Equal(t, 185.50, rate)
}

func TestSelectHotelRateCardNoMatch(t *testing.T) {
	_, err := SelectHotelRateCard(nil, 7, "Deluxe", "peak")

	var notFound *RateNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "hotel rate card", notFound.Kind)
	assert.Contains(t, notFound.Key, "hotel=7")
}

func TestSelectHotelRateCardAmbiguous(t *testing.T) {
	cards := []models.HotelRateCard{
		{HotelID: 7, RoomType: "Deluxe", Season: "peak", Rate: 185.50},
		{HotelID: 7, RoomType: "Deluxe", Season: "peak", Rate: 190.00},
	}

	_, err := SelectHotelRateCard(cards, 7, "Deluxe", "peak")

	var ambiguous *AmbiguousRateError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, 2, ambiguous.Matches)
}
