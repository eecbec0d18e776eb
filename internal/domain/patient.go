package domain

// PatientRecord is one imported row of the heart disease dataset. The portal never writes it.
type PatientRecord struct {
	PatientID                int64
	Age                      int
	Sex                      string
	BloodPressure            int
	CholesterolLevel         int
	FastingBloodSugarOver120 string
	RestingECG               string
	ExerciseInducedAngina    string
}
