package models

// Ward is a fixed administrative subdivision with an assigned councillor
type Ward struct {
	ID         string `bson:"id" json:"id"`
	Name       string `bson:"name" json:"name"`
	Councillor string `bson:"councillor" json:"councillor"`
}

// BengaluruWards is the static ward registry, loaded once at process start.
// It is never mutated at runtime.
var BengaluruWards = []Ward{
	{ID: "1", Name: "Kempegowda Ward", Councillor: "Mr. Ravi Kumar"},
	{ID: "2", Name: "Chowdeshwari Ward", Councillor: "Mrs. Lakshmi Devi"},
	{ID: "3", Name: "Attur Ward", Councillor: "Mr. Suresh B"},
	{ID: "4", Name: "Yelahanka Satellite Town", Councillor: "Mr. Satish M"},
	{ID: "5", Name: "Byatarayanapura", Councillor: "Mrs. Geetha Shashikumar"},
	{ID: "6", Name: "Thanisandra", Councillor: "Mr. Mamatha K"},
	{ID: "7", Name: "Jakur", Councillor: "Mr. K.A. Muneendra Kumar"},
	{ID: "8", Name: "Kodigehalli", Councillor: "Mr. N. Jayaraj"},
	{ID: "9", Name: "Vidyaranyapura", Councillor: "Mr. Pillappa"},
	{ID: "10", Name: "Dodda Bommasandra", Councillor: "Mr. Jayamma"},
}

// WardByID looks up a ward in the registry. Unknown ids fall back to the
// first ward; this is the accepted default, not an error.
func WardByID(id string) Ward {
	for _, w := range BengaluruWards {
		if w.ID == id {
			return w
		}
	}
	return BengaluruWards[0]
}
