package county

import "strings"

// County is one of Kenya's 47 counties.
type County struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// Counties lists all 47 counties in code order.
var Counties = []County{
	{Code: "001", Name: "Mombasa", Region: "Coast"},
	{Code: "002", Name: "Kwale", Region: "Coast"},
	{Code: "003", Name: "Kilifi", Region: "Coast"},
	{Code: "004", Name: "Tana River", Region: "Coast"},
	{Code: "005", Name: "Lamu", Region: "Coast"},
	{Code: "006", Name: "Taita Taveta", Region: "Coast"},
	{Code: "007", Name: "Garissa", Region: "North Eastern"},
	{Code: "008", Name: "Wajir", Region: "North Eastern"},
	{Code: "009", Name: "Mandera", Region: "North Eastern"},
	{Code: "010", Name: "Marsabit", Region: "Eastern"},
	{Code: "011", Name: "Isiolo", Region: "Eastern"},
	{Code: "012", Name: "Meru", Region: "Eastern"},
	{Code: "013", Name: "Tharaka Nithi", Region: "Eastern"},
	{Code: "014", Name: "Embu", Region: "Eastern"},
	{Code: "015", Name: "Kitui", Region: "Eastern"},
	{Code: "016", Name: "Machakos", Region: "Eastern"},
	{Code: "017", Name: "Makueni", Region: "Eastern"},
	{Code: "018", Name: "Nyandarua", Region: "Central"},
	{Code: "019", Name: "Nyeri", Region: "Central"},
	{Code: "020", Name: "Kirinyaga", Region: "Central"},
	{Code: "021", Name: "Murang'a", Region: "Central"},
	{Code: "022", Name: "Kiambu", Region: "Central"},
	{Code: "023", Name: "Turkana", Region: "Rift Valley"},
	{Code: "024", Name: "West Pokot", Region: "Rift Valley"},
	{Code: "025", Name: "Samburu", Region: "Rift Valley"},
	{Code: "026", Name: "Trans Nzoia", Region: "Rift Valley"},
	{Code: "027", Name: "Uasin Gishu", Region: "Rift Valley"},
	{Code: "028", Name: "Elgeyo Marakwet", Region: "Rift Valley"},
	{Code: "029", Name: "Nandi", Region: "Rift Valley"},
	{Code: "030", Name: "Baringo", Region: "Rift Valley"},
	{Code: "031", Name: "Laikipia", Region: "Rift Valley"},
	{Code: "032", Name: "Nakuru", Region: "Rift Valley"},
	{Code: "033", Name: "Narok", Region: "Rift Valley"},
	{Code: "034", Name: "Kajiado", Region: "Rift Valley"},
	{Code: "035", Name: "Kericho", Region: "Rift Valley"},
	{Code: "036", Name: "Bomet", Region: "Rift Valley"},
	{Code: "037", Name: "Kakamega", Region: "Western"},
	{Code: "038", Name: "Vihiga", Region: "Western"},
	{Code: "039", Name: "Bungoma", Region: "Western"},
	{Code: "040", Name: "Busia", Region: "Western"},
	{Code: "041", Name: "Siaya", Region: "Nyanza"},
	{Code: "042", Name: "Kisumu", Region: "Nyanza"},
	{Code: "043", Name: "Homa Bay", Region: "Nyanza"},
	{Code: "044", Name: "Migori", Region: "Nyanza"},
	{Code: "045", Name: "Kisii", Region: "Nyanza"},
	{Code: "046", Name: "Nyamira", Region: "Nyanza"},
	{Code: "047", Name: "Nairobi", Region: "Nairobi"},
}

// ByRegion groups counties by region.
func ByRegion() map[string][]County {
	regions := make(map[string][]County)
	for _, c := range Counties {
		regions[c.Region] = append(regions[c.Region], c)
	}
	return regions
}

// ByCode returns the county with the given code, or nil.
func ByCode(code string) *County {
	for i := range Counties {
		if Counties[i].Code == code {
			return &Counties[i]
		}
	}
	return nil
}

// ByName returns the county with the given name (case-insensitive), or nil.
func ByName(name string) *County {
	for i := range Counties {
		if strings.EqualFold(Counties[i].Name, name) {
			return &Counties[i]
		}
	}
	return nil
}
